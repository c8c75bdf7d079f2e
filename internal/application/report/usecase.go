// Package report genera las representaciones descargables del onboarding de un candidato.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// Source consultas del motor de onboarding necesarias para el informe.
type Source interface {
	Candidate(ctx context.Context, id int64) (*entity.Candidate, error)
	Timeline(ctx context.Context, candidateID int64) ([]*entity.StepRecord, error)
}

// ReportUseCase arma el informe del candidato y lo delega al renderizador.
type ReportUseCase struct {
	source Source
	pdf    ProgressPDFGenerator
	xml    TimelineXMLExporter
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(source Source, pdf ProgressPDFGenerator, xml TimelineXMLExporter) *ReportUseCase {
	return &ReportUseCase{source: source, pdf: pdf, xml: xml}
}

// DownloadPDF devuelve (pdfBytes, filename). ErrNotFound si el candidato no existe.
func (uc *ReportUseCase) DownloadPDF(ctx context.Context, candidateID int64) ([]byte, string, error) {
	r, err := uc.load(ctx, candidateID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.Generate(r)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar PDF: %w", err)
	}
	return b, fmt.Sprintf("onboarding-%d.pdf", candidateID), nil
}

// DownloadXML devuelve (xmlBytes, filename). ErrNotFound si el candidato no existe.
func (uc *ReportUseCase) DownloadXML(ctx context.Context, candidateID int64) ([]byte, string, error) {
	r, err := uc.load(ctx, candidateID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xml.Export(r)
	if err != nil {
		return nil, "", fmt.Errorf("report: exportar XML: %w", err)
	}
	return b, fmt.Sprintf("onboarding-%d.xml", candidateID), nil
}

func (uc *ReportUseCase) load(ctx context.Context, candidateID int64) (CandidateReport, error) {
	cand, err := uc.source.Candidate(ctx, candidateID)
	if err != nil {
		return CandidateReport{}, err
	}
	timeline, err := uc.source.Timeline(ctx, candidateID)
	if err != nil {
		return CandidateReport{}, err
	}
	return CandidateReport{Candidate: cand, Timeline: timeline, GeneratedAt: time.Now()}, nil
}
