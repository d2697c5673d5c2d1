package domain

import "bytes"

// SequenceRecord is the raw FASTA text returned for one UniProt identifier.
type SequenceRecord struct {
	UniProtID string `json:"uniprot_id"`
	FASTA     []byte `json:"-"`
	Size      int    `json:"size"`
}

// FetchFailure records an identifier whose sequence could not be downloaded.
type FetchFailure struct {
	UniProtID  string `json:"uniprot_id"`
	Codes      []Code `json:"codes"`
	Reason     string `json:"reason"`
	StatusCode int    `json:"status_code,omitempty"`
}

// SequenceDatabase holds at most one record per identifier, in resolution order.
type SequenceDatabase struct {
	Records []SequenceRecord `json:"records"`
	Failed  []FetchFailure   `json:"failed"`
}

// Bytes returns the byte-exact concatenation of all records.
func (db SequenceDatabase) Bytes() []byte {
	var buf bytes.Buffer
	for _, r := range db.Records {
		buf.Write(r.FASTA)
	}
	return buf.Bytes()
}
