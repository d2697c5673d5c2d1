package domain

import "time"

// Config represents the topufa configuration loaded from topufa.yaml.
type Config struct {
	Endpoints EndpointsConfig
	HTTP      HTTPConfig
	Blast     BlastConfig
	Paths     PathsConfig
	Outputs   OutputsConfig
}

// EndpointsConfig holds the remote URL templates.
// MappingURL and MappingPath use {{code}}; SequenceURL uses {{id}}.
type EndpointsConfig struct {
	MappingURL  string
	MappingPath string
	SequenceURL string
}

type HTTPConfig struct {
	Timeout      time.Duration
	Retries      int
	RetryWait    time.Duration
	MaxBodyBytes int64
	UserAgent    string
}

type BlastConfig struct {
	MakeBlastDB string
	BlastP      string
	DBType      string
	OutFmt      string
}

type PathsConfig struct {
	OutputDir string
	RunsDir   string
}

// OutputsConfig holds the fixed file names written to the output directory.
type OutputsConfig struct {
	ResolvedPairs string
	FailedCodes   string
	UniqueCodes   string
	UniProtIDs    string
	FASTA         string
	FetchFailures string
	Alignment     string
}

// DefaultConfig provides sane defaults if topufa.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		Endpoints: EndpointsConfig{
			MappingURL:  "https://www.ebi.ac.uk/pdbe/api/mappings/uniprot/{{code}}",
			MappingPath: `$["{{code}}"].UniProt`,
			SequenceURL: "https://rest.uniprot.org/uniprotkb/{{id}}.fasta",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			Retries:      0,
			RetryWait:    time.Second,
			MaxBodyBytes: 4 * 1024 * 1024,
			UserAgent:    "topufa",
		},
		Blast: BlastConfig{
			MakeBlastDB: "makeblastdb",
			BlastP:      "blastp",
			DBType:      "prot",
			OutFmt:      "7",
		},
		Paths: PathsConfig{
			OutputDir: ".",
			RunsDir:   "runs",
		},
		Outputs: OutputsConfig{
			ResolvedPairs: "output_full_list.csv",
			FailedCodes:   "out_uniprot_failed.csv",
			UniqueCodes:   "out_pdbs.csv",
			UniProtIDs:    "out_uniprotids.csv",
			FASTA:         "output_all.fasta",
			FetchFailures: "out_fasta_failed.csv",
			Alignment:     "output_blastp.txt",
		},
	}
}
