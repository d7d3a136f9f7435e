package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/color-tools/api/colorcode"
	"github.com/color-tools/api/models"
)

type options struct {
	jsonOut   bool
	metric    string
	namesFile string
}

func (o *options) converter() (*colorcode.Converter, error) {
	metric, err := colorcode.MetricByName(o.metric)
	if err != nil {
		return nil, err
	}
	names := colorcode.DefaultNames().WithMetric(metric)
	if o.namesFile != "" {
		extra, err := colorcode.LoadNamesFile(o.namesFile)
		if err != nil {
			return nil, err
		}
		names = names.Extend(extra)
	}
	return colorcode.NewConverter(names), nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "colorcode <hex>...",
		Short:        "Show the codes and nearest name of hex colors",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cv, err := opts.converter()
			if err != nil {
				return err
			}

			responses := make([]models.ColorCodeResponse, 0, len(args))
			for _, arg := range args {
				c, err := colorcode.ParseHex(arg)
				if err != nil {
					return err
				}
				responses = append(responses, models.NewColorCodeResponse(cv.Code(c), c))
			}

			if opts.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(responses)
			}

			p := newPrinter(out)
			for _, resp := range responses {
				p.printCode(resp)
			}
			return nil
		},
	}
	cmd.SetOut(out)

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of text")
	flags.StringVar(&opts.metric, "metric", "rgb", "distance used for name matching (rgb, lab, ciede2000)")
	flags.StringVar(&opts.namesFile, "names-file", "", "YAML file with extra named colors")

	cmd.AddCommand(newContrastCmd(out, opts))
	return cmd
}

func newContrastCmd(out io.Writer, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Show the WCAG contrast ratio of two colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := colorcode.ParseHex(args[0])
			if err != nil {
				return err
			}
			bg, err := colorcode.ParseHex(args[1])
			if err != nil {
				return err
			}

			ratio := colorcode.ContrastRatio(fg, bg)
			resp := models.ContrastResponse{
				Foreground: fg.Hex(),
				Background: bg.Hex(),
				Ratio:      ratio,
				AA:         ratio >= models.ContrastAA,
				AAA:        ratio >= models.ContrastAAA,
			}

			if opts.jsonOut {
				return json.NewEncoder(out).Encode(resp)
			}
			newPrinter(out).printContrast(resp, fg, bg)
			return nil
		},
	}
}

// printer renders swatches when writing to a terminal and plain text
// otherwise
type printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	styled   bool
	label    lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	r := lipgloss.NewRenderer(out)
	return &printer{
		out:      out,
		renderer: r,
		styled:   styled,
		label:    r.NewStyle().Foreground(lipgloss.Color("240")).Width(11),
	}
}

func (p *printer) swatch(text string, bg colorcode.Color, fg string) string {
	if !p.styled {
		return text
	}
	fgHex := "#000000"
	if fg == "white" {
		fgHex = "#ffffff"
	}
	return p.renderer.NewStyle().
		Background(lipgloss.Color(bg.String())).
		Foreground(lipgloss.Color(fgHex)).
		Bold(true).
		Padding(0, 1).
		Render(text)
}

func (p *printer) row(label, value string) {
	if p.styled {
		label = p.label.Render(label)
	} else {
		label = fmt.Sprintf("%-11s", label)
	}
	fmt.Fprintf(p.out, "  %s%s\n", label, value)
}

func (p *printer) printCode(resp models.ColorCodeResponse) {
	c := colorcode.MustParseHex(resp.Hex)
	fmt.Fprintf(p.out, "%s %s\n", p.swatch("#"+resp.Hex, c, resp.TextColor), resp.Name)
	p.row("rgb", resp.RGB)
	p.row("hsl", resp.HSL)
	p.row("cmyk", resp.CMYK)
	p.row("luminosity", fmt.Sprintf("%.4f (%s text)", resp.Luminosity, resp.TextColor))
}

func (p *printer) printContrast(resp models.ContrastResponse, fg, bg colorcode.Color) {
	sample := "#" + resp.Foreground + " on #" + resp.Background
	if p.styled {
		sample = p.renderer.NewStyle().
			Foreground(lipgloss.Color(fg.String())).
			Background(lipgloss.Color(bg.String())).
			Padding(0, 1).
			Render(sample)
	}
	fmt.Fprintln(p.out, sample)
	p.row("ratio", fmt.Sprintf("%.2f:1", resp.Ratio))
	p.row("AA", passFail(resp.AA))
	p.row("AAA", passFail(resp.AAA))
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
