package ports

// InputReader loads the free text that codes are extracted from.
type InputReader interface {
	ReadText(path string) (string, error)
}

// QueryValidator checks that a query file exists and holds FASTA entries.
type QueryValidator interface {
	ValidateQuery(path string) (entries int, err error)
}
