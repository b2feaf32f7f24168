package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trobanga/ladle/internal/form"
	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
	"github.com/trobanga/ladle/internal/ui"
)

var (
	calcType        string
	calcPreset      string
	calcFile        string
	calcSets        []string
	calcTarget      string
	calcTargetValue string
	calcSpecies     string
	calcNoWait      bool
	calcNoPreset    bool
	calcDownload    bool
	calcHistory     bool
	calcOutDir      string
)

// calcCmd represents the calc command
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Submit a calculation job and wait for its result",
	Long: `Build a calculation request, check the species/target combination and
submit it to the calculation service.

The request starts from the preset configured for the calc type (see
'presets' in the config file), a named preset (--preset) or a request file
in YAML or JSON (--file). Selections and field values given as flags are
applied on top, in this order: calc type, target element, solving species,
field values.

Fields for --set:
  Fe_g, Mn_field, Si_g, Al_g, O_g, S_g        steel charge (g)
  CaO_g, Al2O3_g, SiO2_g                      slag charge (g)
  T_C, P_atm                                  temperature (°C), pressure (atm)
  target_value, alpha_guess, alpha_max

Example:
  ladle calc
  ladle calc --calc-type desulfurization --target-value 0.003
  ladle calc --preset example_deoxidation --species Mg --set Fe_g=120000
  ladle calc --file request.yaml --no-wait`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcType, "calc-type", "t", "", "calculation type (deoxidation, desulfurization)")
	calcCmd.Flags().StringVarP(&calcPreset, "preset", "p", "", "start from a named preset")
	calcCmd.Flags().StringVarP(&calcFile, "file", "f", "", "start from a request file (YAML or JSON)")
	calcCmd.Flags().StringArrayVar(&calcSets, "set", nil, "set a field value, e.g. --set Fe_g=100000 (repeatable)")
	calcCmd.Flags().StringVar(&calcTarget, "target", "", "target element (e.g. Al, O, S)")
	calcCmd.Flags().StringVar(&calcTargetValue, "target-value", "", "target content in the target's unit")
	calcCmd.Flags().StringVarP(&calcSpecies, "species", "s", "", "solving species (e.g. Ca)")
	calcCmd.Flags().BoolVar(&calcNoWait, "no-wait", false, "submit and print the job id without waiting")
	calcCmd.Flags().BoolVar(&calcNoPreset, "no-preset", false, "start from an empty form instead of the configured preset")
	calcCmd.Flags().BoolVar(&calcDownload, "download", false, "download the result archive when the job completes")
	calcCmd.Flags().BoolVar(&calcHistory, "history", false, "print the job history after the job finishes")
	calcCmd.Flags().StringVarP(&calcOutDir, "out", "o", "", "download directory (default: download_dir from config)")

	calcCmd.MarkFlagsMutuallyExclusive("preset", "file", "no-preset")
	_ = calcCmd.RegisterFlagCompletionFunc("calc-type", completeCalcTypes)
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	catalog := rt.catalog.LoadOrFallback(ctx)
	ctl := form.NewController(catalog, rt.validator, rt.logger)

	if err := populateForm(ctx, rt, ctl); err != nil {
		return err
	}
	if err := applySelections(ctx, ctl); err != nil {
		return err
	}

	req := ctl.Request()
	fmt.Printf("%s %s, target %s = %s %s, species %s\n",
		ui.Bold.Render(ui.CalcTypeLabel(req.CalcType)),
		ui.Dim.Render("("+string(req.CalcType)+")"),
		req.Target.Element,
		ctl.Field(form.FieldTargetValue),
		req.Target.Unit,
		req.SolveSpecies)
	if advisory := ui.RenderVerdict(ctl.Verdict()); advisory != "" {
		fmt.Println(advisory)
	}

	jobID, err := rt.jobs.Submit(ctx, req, ctl.Verdict())
	if err != nil {
		return err
	}
	ctl.SetJobID(jobID)
	fmt.Printf("%s Submitted job %s\n", ui.Success.Render(ui.IconPass), ui.Bold.Render(jobID))

	if calcNoWait {
		fmt.Printf("\nFollow it with: ladle job wait %s\n", jobID)
		return nil
	}

	result, history, err := awaitJob(ctx, rt, jobID, calcHistory)
	printOutcome(rt, jobID, result, history, err)
	if err != nil {
		return err
	}

	if calcDownload {
		return downloadArtifact(ctx, rt, jobID, calcOutDir, ui.IsTerminal(os.Stderr))
	}
	return nil
}

// populateForm fills the form from a request file, a named preset or the
// preset configured for the calc type. The configured preset is best effort.
func populateForm(ctx context.Context, rt *runtime, ctl *form.Controller) error {
	startType := ctl.CalcType()
	if calcType != "" {
		startType = models.CalcType(calcType)
	}

	switch {
	case calcFile != "":
		req, err := readRequestFile(calcFile)
		if err != nil {
			return err
		}
		return ctl.ApplyRequest(ctx, req)

	case calcPreset != "":
		preset, err := rt.catalog.Preset(ctx, calcPreset, ctl.Catalog())
		if err != nil {
			return fmt.Errorf("failed to load preset %s: %w", calcPreset, err)
		}
		return ctl.ApplyPreset(ctx, *preset)

	case !calcNoPreset:
		if name, ok := rt.config.PresetFor(startType); ok {
			preset, err := rt.catalog.Preset(ctx, name, ctl.Catalog())
			if err == nil {
				err = ctl.ApplyPreset(ctx, *preset)
			}
			if err == nil {
				return nil
			}
			// Best effort: without the preset the form starts from catalog defaults
			rt.logger.Warn("Default preset unavailable", "preset", name, "error", err)
		}
	}

	if err := ctl.LoadTargetContext(ctx, startType, calcTarget); err != nil {
		return optionError("calc type or target", err)
	}
	return nil
}

// applySelections applies flag overrides in dependency order
func applySelections(ctx context.Context, ctl *form.Controller) error {
	if calcType != "" && models.CalcType(calcType) != ctl.CalcType() {
		if err := ctl.SelectCalcType(ctx, models.CalcType(calcType)); err != nil {
			return optionError("calc type", err)
		}
	}
	if calcTarget != "" && calcTarget != ctl.TargetElement() {
		if err := ctl.SelectTarget(ctx, calcTarget); err != nil {
			return optionError("target", err)
		}
	}
	if calcSpecies != "" && calcSpecies != ctl.SolveSpecies() {
		if err := ctl.SelectSpecies(ctx, calcSpecies); err != nil {
			return optionError("species", err)
		}
	}

	for _, kv := range calcSets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return lib.ErrRequiredField("--set", fmt.Sprintf("Use --set <field>=<value>, got %q", kv))
		}
		if err := ctl.SetField(form.FieldID(strings.TrimSpace(key)), value); err != nil {
			return optionError("field", err)
		}
	}
	if calcTargetValue != "" {
		if err := ctl.SetField(form.FieldTargetValue, calcTargetValue); err != nil {
			return err
		}
	}
	return nil
}

func optionError(what string, err error) error {
	return lib.WrapError(lib.CategoryValidation, fmt.Sprintf("Invalid %s", what), err,
		"Use 'ladle options' to list calc types, targets and species")
}

// readRequestFile parses a YAML or JSON request file
func readRequestFile(path string) (models.CalculationRequest, error) {
	var req models.CalculationRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, lib.WrapError(lib.CategoryFileSystem, "Cannot read request file", err,
			fmt.Sprintf("Check that %s exists and is readable", path))
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, lib.WrapError(lib.CategoryValidation, "Request file is not valid YAML or JSON", err)
	}
	if err := req.Validate(); err != nil {
		return req, lib.WrapError(lib.CategoryValidation, "Request file is invalid", err)
	}
	return req, nil
}
