package archive_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"case-management-system/internal/casework/domain/archive"
	"case-management-system/internal/casework/domain/cases"
	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/casework/scoring"
	iammodel "case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/dbtest"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
)

func newCase(owner iammodel.User, numero string, criteria scoring.Criteria) model.Case {
	c := model.Case{
		NumeroCaso:  numero,
		Descripcion: "falha no fechamento",
		Fecha:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Aplicacion:  "SAP",
		Estado:      model.EstadoNuevo,
		OwnerUUID:   owner.UUID,
		TeamUUID:    owner.TeamUUID,
	}
	c.ApplyScore(criteria)
	return c
}

func TestArchiveRoundTripAgainstPostgres(t *testing.T) {
	db := dbtest.Setup(t)
	ctx := context.Background()

	team := dbtest.CreateTeam(t, db, "N1")
	owner := dbtest.CreateUser(t, db, iammodel.RoleAnalista, "ana@example.com", &team.UUID)
	stranger := dbtest.CreateUser(t, db, iammodel.RoleAnalista, "bob@example.com", nil)
	all := permission.Filter{Scope: permission.ScopeAll}
	own := permission.Filter{Scope: permission.ScopeOwn, UserUUID: owner.UUID, TeamUUID: owner.TeamUUID}
	foreign := permission.Filter{Scope: permission.ScopeOwn, UserUUID: stranger.UUID}

	caseRepo := cases.NewRepository(db)
	created, err := caseRepo.Create(ctx, newCase(owner, "INC-1", scoring.Criteria{HistorialCaso: 3, ConocimientoModulo: 3, ManipulacionDatos: 3, ClaridadDescripcion: 3, CausaFallo: 3}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := caseRepo.Create(ctx, newCase(owner, "INC-1", scoring.Criteria{HistorialCaso: 1, ConocimientoModulo: 1, ManipulacionDatos: 1, ClaridadDescripcion: 1, CausaFallo: 1})); !errors.Is(err, cases.ErrNumeroDuplicated) {
		t.Fatalf("duplicate numero: %v", err)
	}

	repo := archive.NewRepository(db)
	if _, _, err := repo.Archive(ctx, created.UUID, stranger.UUID, "", foreign); !errors.Is(err, archive.ErrCaseNotFound) {
		t.Fatalf("out-of-scope archive: %v", err)
	}

	archived, _, err := repo.Archive(ctx, created.UUID, owner.UUID, "duplicado", own)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := caseRepo.Read(ctx, created.UUID, all); !errors.Is(err, cases.ErrNotFound) {
		t.Fatalf("archived case still readable: %v", err)
	}

	list, total, err := repo.List(ctx, archive.ListFilter{Page: pagination.Request{Page: 1, Size: 10}}, foreign)
	if err != nil || total != 0 || len(list) != 0 {
		t.Fatalf("foreign list = %d, %v", total, err)
	}

	// '_' e '%' são texto literal na busca
	for search, want := range map[string]int64{"INC-1": 1, "INC_1": 0, "%": 0, "dupl": 1} {
		_, total, err := repo.List(ctx, archive.ListFilter{Search: search, Page: pagination.Request{Page: 1, Size: 10}}, own)
		if err != nil || total != want {
			t.Errorf("search %q = %d, %v; want %d", search, total, err, want)
		}
	}

	// número reutilizado bloqueia a restauração
	blocker, err := caseRepo.Create(ctx, newCase(owner, "INC-1", scoring.Criteria{HistorialCaso: 1, ConocimientoModulo: 1, ManipulacionDatos: 1, ClaridadDescripcion: 1, CausaFallo: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := repo.Restore(ctx, archived.UUID, own); !errors.Is(err, archive.ErrNumeroReused) {
		t.Fatalf("restore over reused numero: %v", err)
	}
	if err := caseRepo.Delete(ctx, blocker.UUID); err != nil {
		t.Fatal(err)
	}

	_, restored, err := repo.Restore(ctx, archived.UUID, own)
	if err != nil {
		t.Fatal(err)
	}
	if restored.UUID != created.UUID || restored.Puntuacion != 15 || restored.Clasificacion != scoring.Alta {
		t.Errorf("restored = %+v", restored)
	}
	if _, err := repo.Read(ctx, archived.UUID, all); !errors.Is(err, archive.ErrNotFound) {
		t.Errorf("archive entry left behind: %v", err)
	}

	stats, err := caseRepo.Stats(ctx, own)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 1 || stats.ByClasificacion[string(scoring.Alta)] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	if _, err := repo.Delete(ctx, uuid.New(), all); !errors.Is(err, archive.ErrNotFound) {
		t.Errorf("purge missing: %v", err)
	}
}
