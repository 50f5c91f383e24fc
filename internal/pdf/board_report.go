package pdf

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"construtora/internal/models"
)

// Generator renders task reports (mockable in tests).
type Generator interface {
	BoardReport(w io.Writer, data BoardData) error
}

type BoardData struct {
	Title       string
	GeneratedAt time.Time
	Columns     map[models.TaskStatus][]models.Task
}

var columnLabels = map[models.TaskStatus]string{
	models.StatusPendente:    "Pendente",
	models.StatusEmAndamento: "Em andamento",
	models.StatusConcluida:   "Concluída",
}

// BoardGenerator draws the Kanban columns as consecutive tables. With an
// empty FontPath it falls back to the core Helvetica font and a cp1252
// translator, which covers Portuguese accents.
type BoardGenerator struct {
	FontPath string
	fontName string
}

func NewBoardGenerator(fontPath string) *BoardGenerator {
	name := "Helvetica"
	if fontPath != "" {
		name = "DejaVu"
	}
	return &BoardGenerator{FontPath: fontPath, fontName: name}
}

func (g *BoardGenerator) BoardReport(w io.Writer, data BoardData) error {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.SetTitle(data.Title, true)
	doc.SetAuthor("Construtora", true)
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)

	tr := func(s string) string { return s }
	if g.FontPath != "" {
		doc.AddUTF8Font(g.fontName, "", g.FontPath)
		doc.AddUTF8Font(g.fontName, "B", g.FontPath)
	} else {
		tr = doc.UnicodeTranslatorFromDescriptor("")
	}

	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont(g.fontName, "", 9)
		doc.CellFormat(0, 8, fmt.Sprintf("%d/{nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	doc.SetFont(g.fontName, "B", 16)
	doc.CellFormat(0, 10, tr(data.Title), "", 1, "L", false, 0, "")
	doc.SetFont(g.fontName, "", 10)
	doc.CellFormat(0, 6, tr("Gerado em "+data.GeneratedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	g.hr(doc)

	widths := []float64{12, 110, 22, 28, 50, 45}
	header := []string{"#", "Título", "Prioridade", "Prazo", "Responsável", "Projeto"}

	for _, status := range models.BoardColumns {
		tasks := data.Columns[status]
		doc.Ln(2)
		doc.SetFont(g.fontName, "B", 12)
		doc.CellFormat(0, 8, tr(fmt.Sprintf("%s (%d)", columnLabels[status], len(tasks))), "", 1, "L", false, 0, "")

		doc.SetFont(g.fontName, "B", 9)
		doc.SetFillColor(230, 230, 230)
		for i, h := range header {
			doc.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
		}
		doc.Ln(-1)

		doc.SetFont(g.fontName, "", 9)
		if len(tasks) == 0 {
			doc.CellFormat(sum(widths), 7, tr("Nenhuma tarefa"), "1", 1, "C", false, 0, "")
			continue
		}
		for _, t := range tasks {
			row := []string{
				strconv.FormatInt(t.ID, 10),
				truncate(t.Title, 70),
				strconv.Itoa(t.Priority),
				formatDue(t.DueDate),
				refName(t.AssignedTo),
				projetoTitle(t.Projeto),
			}
			for i, v := range row {
				doc.CellFormat(widths[i], 7, tr(v), "1", 0, "L", false, 0, "")
			}
			doc.Ln(-1)
		}
	}

	return doc.Output(w)
}

func (g *BoardGenerator) hr(doc *gofpdf.Fpdf) {
	y := doc.GetY() + 1.5
	doc.SetLineWidth(0.2)
	doc.Line(15, y, 282, y)
	doc.SetY(y + 2)
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatDue(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02/01/2006")
}

func refName(u *models.UserRef) string {
	if u == nil {
		return "—"
	}
	return u.Name
}

func projetoTitle(p *models.ProjetoRef) string {
	if p == nil {
		return "—"
	}
	return p.Title
}
