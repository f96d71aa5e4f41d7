package model

import (
	"testing"
	"time"

	"case-management-system/internal/casework/scoring"
)

func TestApplyScoreKeepsCriteriaAndResultTogether(t *testing.T) {
	var c Case
	res := c.ApplyScore(scoring.Criteria{HistorialCaso: 3, ConocimientoModulo: 3, ManipulacionDatos: 2, ClaridadDescripcion: 2, CausaFallo: 2})

	if c.Puntuacion != 12 || c.Clasificacion != scoring.Alta || res.Total != 12 {
		t.Fatalf("case = %+v", c)
	}
	if c.Criteria() != (scoring.Criteria{HistorialCaso: 3, ConocimientoModulo: 3, ManipulacionDatos: 2, ClaridadDescripcion: 2, CausaFallo: 2}) {
		t.Errorf("criteria round trip = %+v", c.Criteria())
	}
}

func TestIsValidEstado(t *testing.T) {
	for _, e := range Estados {
		if !IsValidEstado(e) {
			t.Errorf("%s should be valid", e)
		}
	}
	if IsValidEstado("archivado") {
		t.Error("unknown estado accepted")
	}
}

func TestTodoSetCompleted(t *testing.T) {
	var td Todo
	now := time.Now()
	td.SetCompleted(true, now)
	if !td.Completed || td.CompletedAt == nil || !td.CompletedAt.Equal(now) {
		t.Fatalf("todo = %+v", td)
	}
	td.SetCompleted(false, now)
	if td.Completed || td.CompletedAt != nil {
		t.Errorf("todo = %+v", td)
	}
}
