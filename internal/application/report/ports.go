package report

import (
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// CandidateReport datos de entrada de los renderizadores.
type CandidateReport struct {
	Candidate   *entity.Candidate
	Timeline    []*entity.StepRecord // una fila por paso definido, en orden del flujo
	GeneratedAt time.Time
}

// ProgressPDFGenerator renderiza el informe de progreso en PDF.
type ProgressPDFGenerator interface {
	Generate(r CandidateReport) ([]byte, error)
}

// TimelineXMLExporter serializa la línea de tiempo en XML.
type TimelineXMLExporter interface {
	Export(r CandidateReport) ([]byte, error)
}
