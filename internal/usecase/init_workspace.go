package usecase

import (
	"strings"

	"github.com/guimsilvaa/topufa/internal/domain"
	"github.com/guimsilvaa/topufa/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	if strings.TrimSpace(root) == "" {
		return &domain.OpError{Op: "usecase.init", Kind: domain.KindInvalidInput, Err: domain.ErrNotFound}
	}
	return uc.initializer.Init(root, force)
}
