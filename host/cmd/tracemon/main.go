package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"f1hal/host/serial"
	"f1hal/host/trace"
)

// Single-byte requests understood by the firmware's UART loop
const (
	requestDump   = 'd'
	requestClear  = 'c'
	requestToggle = 't'
	requestHigh   = '1'
	requestLow    = '0'
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate of the board's UART")
	verbose = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	fmt.Println("f1hal trace monitor")
	fmt.Println("===================")
	fmt.Println()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Opening %s at %d baud...\n", *device, *baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		parts, err := shlex.Split(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "dump", "d":
			if err := dump(port); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "clear", "c":
			if err := request(port, requestClear); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "toggle", "t":
			if err := request(port, requestToggle); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "high", "low":
			cmd := byte(requestHigh)
			if parts[0] == "low" {
				cmd = requestLow
			}
			if err := request(port, cmd); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "watch", "w":
			if err := watch(port, parts[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", parts[0])
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help                   - Show this help message")
	fmt.Println("  dump                   - Print the board's register trace")
	fmt.Println("  clear                  - Empty the board's register trace")
	fmt.Println("  toggle                 - Toggle the board LED")
	fmt.Println("  high / low             - Drive the LED pin high or low")
	fmt.Println("  watch [count] [period] - Dump and clear repeatedly (default 10 times, 1s)")
	fmt.Println("  quit/exit/q            - Exit the program")
	fmt.Println()
}

// request sends a one-byte command after dropping stale input
func request(port serial.Port, cmd byte) error {
	if err := port.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if _, err := port.Write([]byte{cmd}); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	return nil
}

func dump(port serial.Port) error {
	if err := request(port, requestDump); err != nil {
		return err
	}
	n, err := printEvents(port)
	if err != nil {
		return err
	}
	fmt.Printf("%d events\n", n)
	return nil
}

// printEvents prints events until the line goes quiet
func printEvents(r io.Reader) (int, error) {
	reader := trace.NewReader(r)
	count := 0
	for {
		evt, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
		fmt.Println(evt)
		count++
	}
	if *verbose && reader.Discards() > 0 {
		fmt.Printf("(%d framing errors)\n", reader.Discards())
	}
	return count, nil
}

func watch(port serial.Port, args []string) error {
	count, period := 10, time.Second
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		count = n
	}
	if len(args) > 1 {
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return fmt.Errorf("invalid period: %w", err)
		}
		period = d
	}

	for i := 0; i < count; i++ {
		if err := request(port, requestDump); err != nil {
			return err
		}
		if _, err := printEvents(port); err != nil {
			return err
		}
		if err := request(port, requestClear); err != nil {
			return err
		}
		time.Sleep(period)
	}
	return nil
}
