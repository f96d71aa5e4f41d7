package archive

import (
	"encoding/json"
	"fmt"
	"strings"

	"case-management-system/internal/casework/domain/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// snapshotOf monta o registro de arquivo com o caso serializado por inteiro.
func snapshotOf(c model.Case, archivedBy uuid.UUID, reason string) (model.ArchivedCase, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return model.ArchivedCase{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return model.ArchivedCase{
		OriginalUUID: c.UUID,
		NumeroCaso:   c.NumeroCaso,
		Snapshot:     datatypes.JSON(raw),
		Reason:       strings.TrimSpace(reason),
		ArchivedBy:   archivedBy,
		OwnerUUID:    c.OwnerUUID,
		TeamUUID:     c.TeamUUID,
	}, nil
}

// restoreFrom reconstrói o caso com o UUID original.
func restoreFrom(a model.ArchivedCase) (model.Case, error) {
	var c model.Case
	if err := json.Unmarshal(a.Snapshot, &c); err != nil {
		return model.Case{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	if c.NumeroCaso == "" {
		return model.Case{}, ErrSnapshot
	}
	c.UUID = a.OriginalUUID
	return c, nil
}
