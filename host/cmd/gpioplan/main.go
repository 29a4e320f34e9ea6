package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"f1hal/core"
	"f1hal/host/board"
	"f1hal/host/trace"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "gpioplan",
		Short: "Plan STM32F1 GPIO and EXTI register contents",
		Long:  "Plan the GPIO, AFIO, EXTI and NVIC register contents a board description produces on an STM32F10x.",
	}

	showCmd = &cobra.Command{
		Use:   "show [board.yaml]",
		Short: "Print the register image of a board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args)
			if err != nil {
				return err
			}

			periph := core.NewPeripherals()
			periph.LoadResetValues()
			if verbose {
				core.SetTraceEnabled(true)
				core.ClearTrace()
			}

			img, err := board.Apply(b, periph)
			if err != nil {
				return err
			}
			printImage(b, img)

			if verbose {
				fmt.Println()
				for i, evt := range core.TraceEvents() {
					fmt.Println(trace.Event{Seq: uint8(i), TraceEvent: evt})
				}
			}
			return nil
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check [board.yaml]",
		Short: "Validate a board description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d pins, %d interrupts OK\n", b.Name, len(b.Pins), len(b.Interrupts))
			return nil
		},
	}
)

func init() {
	showCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every register write in order")
	rootCmd.AddCommand(showCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBoard reads the named board file or falls back to the built-in one
func loadBoard(args []string) (*board.Board, error) {
	if len(args) == 0 {
		return board.Default(), nil
	}
	return board.Load(args[0])
}

func printImage(b *board.Board, img *board.Image) {
	fmt.Printf("Board: %s\n\n", b.Name)
	for _, p := range b.Pins {
		fmt.Printf("  %-10s P%s%-2d %-12s %s\n", p.Name, p.Port, p.Pin, p.Mode, p.Type)
	}
	fmt.Println()

	fmt.Printf("RCC_APB2ENR  = 0x%08X\n", img.APB2ENR)
	fmt.Printf("AFIO_MAPR    = 0x%08X\n", img.MAPR)

	ports := maps.Keys(img.Ports)
	slices.Sort(ports)
	for _, port := range ports {
		pi := img.Ports[port]
		fmt.Printf("GPIO%s_CRL    = 0x%08X\n", port, pi.CRL)
		fmt.Printf("GPIO%s_CRH    = 0x%08X\n", port, pi.CRH)
		fmt.Printf("GPIO%s_ODR    = 0x%08X\n", port, pi.ODR)
	}

	for i, v := range img.EXTICR {
		if v != 0 {
			fmt.Printf("AFIO_EXTICR%d = 0x%08X\n", i+1, v)
		}
	}
	fmt.Printf("EXTI_IMR     = 0x%08X\n", img.IMR)
	fmt.Printf("EXTI_RTSR    = 0x%08X\n", img.RTSR)
	fmt.Printf("EXTI_FTSR    = 0x%08X\n", img.FTSR)
	for i, v := range img.ISER {
		fmt.Printf("NVIC_ISER%d   = 0x%08X\n", i, v)
	}
}
