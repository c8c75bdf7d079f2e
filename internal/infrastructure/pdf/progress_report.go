// Package pdf genera el informe de progreso de onboarding de un candidato.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del candidato  │  Progreso % + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PERFIL: Email / Cargo / Área / Fecha de ingreso            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Paso | Estado | Última actualización            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: pasos completados + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Onboarding-api/internal/application/report"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ report.ProgressPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.ProgressPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	company string
}

// NewMarotoReportGenerator construye el generador; company aparece como autor del PDF.
func NewMarotoReportGenerator(company string) *MarotoReportGenerator {
	return &MarotoReportGenerator{company: company}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(r report.CandidateReport) ([]byte, error) {
	if r.Candidate == nil {
		return nil, fmt.Errorf("pdf: candidato requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de onboarding", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(profileRow(r.Candidate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, rr := range tableStepRows(r.Timeline) {
		m.AddRows(rr)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r.Timeline))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + estado (izq) y progreso + fecha de generación (der).
func headerRow(r report.CandidateReport) core.Row {
	c := r.Candidate
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(c.FullName(), c.Email), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+c.Status, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE ONBOARDING", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d%%", c.Progress), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// profileRow: datos de contacto y puesto.
func profileRow(c *entity.Candidate) core.Row {
	start := "—"
	if c.StartDate != nil {
		start = c.StartDate.Format("02/01/2006")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PERFIL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Cargo: %s   |   Área: %s   |   Ingreso: %s",
				c.Email,
				nonEmpty(c.Position, "—"),
				nonEmpty(c.Department, "—"),
				start,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de pasos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).
		WithStyle(&props.Cell{BackgroundColor: colorPrimary}).
		Add(
			h("#", 1, align.Center),
			h("Paso", 5, align.Left),
			h("Estado", 3, align.Center),
			h("Última actualización", 3, align.Right),
		)
}

// tableStepRows: una fila por paso del flujo (placeholders incluidos).
func tableStepRows(timeline []*entity.StepRecord) []core.Row {
	result := make([]core.Row, 0, len(timeline))
	for i, s := range timeline {
		statusColor := colorGray
		if onboarding.IsCompleted(s.Status) {
			statusColor = colorGreen
		}
		updated := "—"
		if !s.IsPlaceholder() {
			updated = s.UpdatedAt.Format("02/01/2006 15:04")
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				onboarding.StepTitle(s.StepID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.Status,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: statusColor},
			)),
			col.New(3).Add(text.New(
				updated,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: resumen de pasos completados.
func footerRow(timeline []*entity.StepRecord) core.Row {
	done := 0
	for _, s := range timeline {
		if onboarding.IsCompleted(s.Status) {
			done++
		}
	}
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Pasos completados: %d de %d", done, len(timeline)), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
		text.New("El progreso se deriva del último estado registrado de cada paso.", props.Text{
			Size: 6.5, Color: colorGray, Top: 7,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
