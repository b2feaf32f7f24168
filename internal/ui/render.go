package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/trobanga/ladle/internal/models"
)

// StatusSymbol returns the symbol shown next to a job status
func StatusSymbol(status models.JobStatus) string {
	switch status {
	case models.JobStatusPending:
		return IconPending
	case models.JobStatusRunning:
		return IconRunning
	case models.JobStatusCompleted:
		return IconPass
	case models.JobStatusFailed:
		return IconFail
	default:
		return "?"
	}
}

// StatusCell renders "<symbol> <status>" padded to width, then styled
func StatusCell(status models.JobStatus, width int) string {
	text := fmt.Sprintf("%-*s", width, StatusSymbol(status)+" "+string(status))
	switch status {
	case models.JobStatusCompleted:
		return Success.Render(text)
	case models.JobStatusFailed:
		return Error.Render(text)
	case models.JobStatusRunning:
		return Info.Render(text)
	default:
		return Dim.Render(text)
	}
}

// CalcTypeLabel returns the display label of a calc type
func CalcTypeLabel(t models.CalcType) string {
	switch t {
	case models.CalcDeoxidation:
		return "Deoxidation"
	case models.CalcDesulfurization:
		return "Desulfurization"
	default:
		return string(t)
	}
}

// RenderVerdict returns the advisory line for a verdict, empty when ok
func RenderVerdict(v models.CombinationVerdict) string {
	v = v.Normalize()
	switch v.Level {
	case models.VerdictReject:
		return Error.Render(IconFail + " " + v.Message)
	case models.VerdictWarn:
		return Warning.Render(IconWarn + " " + v.Message)
	default:
		return ""
	}
}

// PrintVerdict writes the verdict of a combination check
func PrintVerdict(w io.Writer, species, element string, v models.CombinationVerdict) {
	if line := RenderVerdict(v); line != "" {
		_, _ = fmt.Fprintln(w, line)
		return
	}
	_, _ = fmt.Fprintln(w, Success.Render(fmt.Sprintf("%s %s can be solved for target %s", IconPass, species, element)))
}

// PrintResult writes the solved amount followed by the steel and slag tables
func PrintResult(w io.Writer, r *models.Result) {
	if r == nil {
		return
	}
	species := r.SolveSpecies
	if species == "" {
		species = models.DefaultSolveSpecies
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", Bold.Render(fmt.Sprintf("Required %s:", species)), Success.Render(fmt.Sprintf("%.4f g", r.AlphaG)))
	if r.TempK != 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Dim.Render(fmt.Sprintf("T = %.2f K, P = %g atm", r.TempK, r.PressureAtm)))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, Header.Render("Steel"))
	steel := [][2]string{
		{"Fe", FormatPct(r.Steel.FeWtPct)},
		{"Mn", FormatPct(r.Steel.MnWtPct)},
		{"Si", FormatPct(r.Steel.SiWtPct)},
		{"Al", FormatPct(r.Steel.AlWtPct)},
		{"O", FormatPPM(r.Steel.OPPM)},
		{"S", FormatPct(r.Steel.SWtPct)},
	}
	printPairs(w, steel)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, Header.Render("Slag"))
	slag := [][2]string{
		{"CaO", FormatPct(r.Slag.CaOWtPct)},
		{"Al2O3", FormatPct(r.Slag.Al2O3WtPct)},
		{"SiO2", FormatPct(r.Slag.SiO2WtPct)},
		{"MnO", FormatPct(r.Slag.MnOWtPct)},
		{"FeO", FormatPct(r.Slag.FeOWtPct)},
		{"CaS", FormatPct(r.Slag.CaSWtPct)},
	}
	printPairs(w, slag)
}

func printPairs(w io.Writer, rows [][2]string) {
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "  %-6s %12s\n", row[0], row[1])
	}
}

// PrintHistory writes the job history table
func PrintHistory(w io.Writer, rows []models.HistoryRow) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, Dim.Render("No jobs yet."))
		return
	}

	_, _ = fmt.Fprintln(w, Header.Render(fmt.Sprintf("%-20s %-16s %-14s %-13s %s", "JOB ID", "TYPE", "SOLVED (g)", "STATUS", "CREATED")))
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%-20s %-16s %-14s %s %s\n",
			row.JobID,
			CalcTypeLabel(row.CalcType),
			row.Solved,
			StatusCell(row.Status, 13),
			Dim.Render(row.CreatedAt))
	}
	_, _ = fmt.Fprintf(w, "\nTotal: %d jobs\n", len(rows))
}

// PrintCatalog writes the targets and solving species of each calc type.
// A non-empty only restricts the output to that calc type.
func PrintCatalog(w io.Writer, catalog *models.OptionCatalog, only models.CalcType) {
	if catalog.Fallback {
		_, _ = fmt.Fprintln(w, Warning.Render(IconWarn+" service options unavailable, showing built-in defaults"))
	}
	for _, t := range models.CalcTypes {
		if only != "" && t != only {
			continue
		}
		targets := catalog.TargetsFor(t)
		if len(targets) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", Bold.Render(CalcTypeLabel(t)), Dim.Render("("+string(t)+")"))
		for _, target := range targets {
			species := catalog.SpeciesFor(target.Element)
			names := make([]string, 0, len(species.Ordered()))
			for _, s := range species.Ordered() {
				if species.IsRecommended(s) {
					names = append(names, Success.Render(s+"*"))
				} else {
					names = append(names, s)
				}
			}
			label := target.Label
			if label == "" {
				label = target.Element
			}
			_, _ = fmt.Fprintf(w, "  %-4s %-24s default %-10s species: %s\n",
				target.Element,
				label,
				fmt.Sprintf("%g %s", target.DefaultValue, target.Unit),
				strings.Join(names, ", "))
		}
	}
	_, _ = fmt.Fprintln(w, Dim.Render("* recommended"))
}
