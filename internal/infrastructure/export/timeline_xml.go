// Package export serializa la línea de tiempo de onboarding para sistemas de RRHH externos.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Onboarding-api/internal/application/report"
	"github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
)

// TimelineNamespace espacio de nombres del documento exportado.
const TimelineNamespace = "urn:onboarding:timeline:1"

var _ report.TimelineXMLExporter = (*TimelineXMLExporter)(nil)

// TimelineXMLExporter implementa report.TimelineXMLExporter con etree.
type TimelineXMLExporter struct{}

// NewTimelineXMLExporter construye el exportador.
func NewTimelineXMLExporter() *TimelineXMLExporter { return &TimelineXMLExporter{} }

// Export produce:
//
//	<OnboardingTimeline xmlns="..." generatedAt="...">
//	  <Candidate id="1" status="pending" progress="33"><Email/>...</Candidate>
//	  <Steps><Step order="1" id="login" status="completed" placeholder="false">...</Step></Steps>
//	</OnboardingTimeline>
func (e *TimelineXMLExporter) Export(r report.CandidateReport) ([]byte, error) {
	if r.Candidate == nil {
		return nil, fmt.Errorf("export: candidato requerido")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("OnboardingTimeline")
	root.CreateAttr("xmlns", TimelineNamespace)
	root.CreateAttr("generatedAt", r.GeneratedAt.UTC().Format(time.RFC3339))

	c := r.Candidate
	cand := root.CreateElement("Candidate")
	cand.CreateAttr("id", strconv.FormatInt(c.ID, 10))
	cand.CreateAttr("status", c.Status)
	cand.CreateAttr("progress", strconv.Itoa(c.Progress))
	cand.CreateElement("Email").SetText(c.Email)
	cand.CreateElement("FirstName").SetText(c.FirstName)
	cand.CreateElement("LastName").SetText(c.LastName)
	if c.Position != "" {
		cand.CreateElement("Position").SetText(c.Position)
	}
	if c.Department != "" {
		cand.CreateElement("Department").SetText(c.Department)
	}
	if c.StartDate != nil {
		cand.CreateElement("StartDate").SetText(c.StartDate.Format("2006-01-02"))
	}

	steps := root.CreateElement("Steps")
	for i, s := range r.Timeline {
		el := steps.CreateElement("Step")
		el.CreateAttr("order", strconv.Itoa(i+1))
		el.CreateAttr("id", s.StepID)
		el.CreateAttr("status", s.Status)
		el.CreateAttr("placeholder", strconv.FormatBool(s.IsPlaceholder()))
		el.CreateElement("Title").SetText(onboarding.StepTitle(s.StepID))
		if !s.IsPlaceholder() {
			el.CreateElement("UpdatedAt").SetText(s.UpdatedAt.UTC().Format(time.RFC3339))
		}
		if s.Data != nil {
			el.CreateElement("Data").CreateCData(*s.Data)
		}
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("export: serializar XML: %w", err)
	}
	return out.Bytes(), nil
}
