package project

import (
	"errors"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// Domain errors for the project module.
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectArchived    = errors.New("project is archived")
	ErrProjectNotArchived = errors.New("project is not archived")
	ErrInvalidProjectName = errors.New("project name must be 1 to 100 characters")
	ErrReorderSetMismatch = errors.New("order must list every active project exactly once")
)

var errorTable = []collaboration.ErrorInfo{
	{Err: ErrProjectNotFound, Kind: collaboration.KindNotFound, Code: "project_not_found"},
	{Err: ErrProjectArchived, Kind: collaboration.KindInvariant, Code: "project_archived"},
	{Err: ErrProjectNotArchived, Kind: collaboration.KindInvariant, Code: "project_not_archived"},
	{Err: ErrInvalidProjectName, Kind: collaboration.KindValidation, Code: "invalid_project_name"},
	{Err: ErrReorderSetMismatch, Kind: collaboration.KindConflict, Code: "reorder_set_mismatch"},
}

// Classify finds the categorized error wrapped by err, falling back to the
// collaboration categories.
func Classify(err error) (collaboration.ErrorInfo, bool) {
	if info, ok := collaboration.Lookup(err, errorTable); ok {
		return info, true
	}
	return collaboration.Classify(err)
}
