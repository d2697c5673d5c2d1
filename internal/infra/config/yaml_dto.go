package config

// YAMLConfig mirrors topufa.yaml. Every field is optional; zero values keep
// the defaults.
type YAMLConfig struct {
	Topufa struct {
		Endpoints YAMLEndpoints `yaml:"endpoints"`
		HTTP      YAMLHTTP      `yaml:"http"`
		Blast     YAMLBlast     `yaml:"blast"`
		Paths     YAMLPaths     `yaml:"paths"`
		Outputs   YAMLOutputs   `yaml:"outputs"`
	} `yaml:"topufa"`
}

type YAMLEndpoints struct {
	MappingURL  string `yaml:"mapping_url"`
	MappingPath string `yaml:"mapping_path"`
	SequenceURL string `yaml:"sequence_url"`
}

type YAMLHTTP struct {
	Timeout      string `yaml:"timeout"`
	Retries      *int   `yaml:"retries"`
	RetryWait    string `yaml:"retry_wait"`
	MaxBodyBytes *int64 `yaml:"max_body_bytes"`
	UserAgent    string `yaml:"user_agent"`
}

type YAMLBlast struct {
	MakeBlastDB string `yaml:"makeblastdb"`
	BlastP      string `yaml:"blastp"`
	DBType      string `yaml:"dbtype"`
	OutFmt      string `yaml:"outfmt"`
}

type YAMLPaths struct {
	OutputDir string `yaml:"output_dir"`
	RunsDir   string `yaml:"runs_dir"`
}

type YAMLOutputs struct {
	ResolvedPairs string `yaml:"resolved_pairs"`
	FailedCodes   string `yaml:"failed_codes"`
	UniqueCodes   string `yaml:"unique_codes"`
	UniProtIDs    string `yaml:"uniprot_ids"`
	FASTA         string `yaml:"fasta"`
	FetchFailures string `yaml:"fetch_failures"`
	Alignment     string `yaml:"alignment"`
}
