package ports

import "github.com/guimsilvaa/topufa/internal/domain"

// ArtifactStore persists run artifacts for reproducibility.
type ArtifactStore interface {
	SaveRun(run domain.RunResult) (id string, err error)
}
