package archive

import (
	"encoding/json"
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/validation"

	"github.com/google/uuid"
)

var archiveRules = validation.Rules{
	"reason": "omitempty,max=2000",
}

type ArchiveRequestDto struct {
	Reason string `json:"reason"`
}

type ListArchiveRequestDto struct {
	pagination.Request
	Search string `form:"search"`
}

type ArchivedCaseResponseDto struct {
	UUID         uuid.UUID       `json:"uuid"`
	OriginalUUID uuid.UUID       `json:"original_uuid"`
	NumeroCaso   string          `json:"numero_caso"`
	Reason       string          `json:"reason"`
	ArchivedBy   uuid.UUID       `json:"archived_by"`
	OwnerUUID    uuid.UUID       `json:"owner_uuid"`
	TeamUUID     *uuid.UUID      `json:"team_uuid"`
	ArchivedAt   time.Time       `json:"archived_at"`
	Snapshot     json.RawMessage `json:"snapshot,omitempty"`
}

// ToResponse omite o snapshot nas listagens.
func ToResponse(a model.ArchivedCase, withSnapshot bool) ArchivedCaseResponseDto {
	out := ArchivedCaseResponseDto{
		UUID:         a.UUID,
		OriginalUUID: a.OriginalUUID,
		NumeroCaso:   a.NumeroCaso,
		Reason:       a.Reason,
		ArchivedBy:   a.ArchivedBy,
		OwnerUUID:    a.OwnerUUID,
		TeamUUID:     a.TeamUUID,
		ArchivedAt:   a.ArchivedAt,
	}
	if withSnapshot && len(a.Snapshot) > 0 {
		out.Snapshot = json.RawMessage(a.Snapshot)
	}
	return out
}

// auditView é a visão usada no diff: o caso arquivado é auditado pelos seus
// campos principais, não pelo JSON inteiro.
type auditView struct {
	NumeroCaso string     `json:"numero_caso"`
	Reason     string     `json:"reason"`
	ArchivedBy uuid.UUID  `json:"archived_by"`
	OwnerUUID  uuid.UUID  `json:"owner_uuid"`
	TeamUUID   *uuid.UUID `json:"team_uuid"`
}

func toAudit(a model.ArchivedCase) auditView {
	return auditView{
		NumeroCaso: a.NumeroCaso,
		Reason:     a.Reason,
		ArchivedBy: a.ArchivedBy,
		OwnerUUID:  a.OwnerUUID,
		TeamUUID:   a.TeamUUID,
	}
}
