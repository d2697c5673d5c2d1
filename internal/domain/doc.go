// Package domain contains the core model of the PDB to UniProt to BLAST pipeline.
//
// The domain is transport- and persistence-agnostic: it does not depend on net/http,
// os/exec, YAML parsing or the filesystem. Infra adapters map into/from these types.
package domain
