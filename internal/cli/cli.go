// Package cli implements the menu-driven external surface as a small
// state machine — an enum of states plus a transition function — per
// SPEC_FULL.md's design notes, rather than the one-class-per-screen
// hierarchy of the original implementation.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"waternet/internal/applog"
	"waternet/internal/facade"
	"waternet/internal/network"
	"waternet/internal/report"
)

type state int

const (
	stateMainMenu state = iota
	stateCityFlow
	stateDeficitReport
	stateNotEssentialReservoir
	stateNotEssentialStation
	stateComponentImpact
	statePipelineImpact
	stateEssentialPipelines
	stateOptimizeLoad
	stateExit
)

// transition maps the main menu's input line to the state that handles
// it. Every other state returns to the main menu after executing once.
func transition(cur state, input string) state {
	if cur != stateMainMenu {
		return stateMainMenu
	}
	switch strings.TrimSpace(input) {
	case "1":
		return stateCityFlow
	case "2":
		return stateDeficitReport
	case "3":
		return stateNotEssentialReservoir
	case "4":
		return stateNotEssentialStation
	case "5":
		return stateComponentImpact
	case "6":
		return statePipelineImpact
	case "7":
		return stateEssentialPipelines
	case "8":
		return stateOptimizeLoad
	case "0":
		return stateExit
	default:
		return stateMainMenu
	}
}

const menuText = `
Water Network Analyzer
 1) City flow
 2) Deficit report
 3) Not-essential reservoirs
 4) Not-essential stations
 5) Component impact (station)
 6) Pipeline impact
 7) Essential pipelines
 8) Optimize load
 0) Exit
> `

// Run drives the interactive menu loop against f, writing every report
// through w, until the user exits. It returns the process exit code.
func Run(f *facade.Facade, w *report.Writer, in io.Reader, out io.Writer) int {
	scanner := bufio.NewScanner(in)
	cur := stateMainMenu
	for {
		fmt.Fprint(out, menuText)
		if !scanner.Scan() {
			return 0
		}
		cur = transition(cur, scanner.Text())
		if cur == stateExit {
			fmt.Fprintln(out, "goodbye")
			return 0
		}
		if err := dispatch(cur, f, w, scanner, out); err != nil {
			fmt.Fprintln(out, "error:", err)
			applog.Log.Error("menu operation failed", "error", err)
		}
		cur = stateMainMenu
	}
}

func dispatch(s state, f *facade.Facade, w *report.Writer, scanner *bufio.Scanner, out io.Writer) error {
	switch s {
	case stateCityFlow:
		code := prompt(scanner, out, "city code: ")
		flow, err := f.CityFlow(code)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s flow = %.2f\n", code, flow)
		return nil

	case stateDeficitReport:
		rows := f.DeficitReport()
		fmt.Fprintf(out, "%d cities in deficit\n", len(rows))
		return w.WriteDeficitReport(rows)

	case stateNotEssentialReservoir:
		codes, err := f.NotEssential(network.KindReservoir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d non-essential reservoirs\n", len(codes))
		return w.WriteNotEssential("reservoir", codes)

	case stateNotEssentialStation:
		codes, err := f.NotEssential(network.KindPumpingStation)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d non-essential stations\n", len(codes))
		return w.WriteNotEssential("station", codes)

	case stateComponentImpact:
		code := prompt(scanner, out, "component code: ")
		rows, err := f.ComponentImpact(code)
		if err != nil {
			return err
		}
		return w.WriteImpact("component_"+code, rows)

	case statePipelineImpact:
		a := prompt(scanner, out, "service point A: ")
		b := prompt(scanner, out, "service point B: ")
		uniInput := prompt(scanner, out, "unidirectional? (y/n): ")
		rows, err := f.PipelineImpact(a, b, strings.EqualFold(uniInput, "y"))
		if err != nil {
			return err
		}
		return w.WriteImpact("pipeline_"+a+"_"+b, rows)

	case stateEssentialPipelines:
		rows, err := f.EssentialPipelines()
		if err != nil {
			return err
		}
		return w.WriteEssentialPipelines(rows)

	case stateOptimizeLoad:
		result := f.OptimizeLoad()
		fmt.Fprintf(out, "load balanced in %d iterations\n", result.Iterations)
		if err := w.WriteMetrics("before_optimize", result.Before); err != nil {
			return err
		}
		return w.WriteMetrics("after_optimize", result.After)
	}
	return nil
}

func prompt(scanner *bufio.Scanner, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
