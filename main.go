package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"dscheirer.com/segdemo/numfmt"
)

// segdemo [--config={config file}] [--display=tm1637|log|term] [show VALUE | serve]

var (
	cfgFile     string
	displayName string
	loopScript  bool
)

var rootCmd = &cobra.Command{
	Use:   "segdemo",
	Short: "Seven-segment display demo for TM1637 modules",
	Long: `segdemo drives a TM1637 seven-segment module from the GPIO pins and
plays a script of formatted numbers on it: plain integers, leading zeros,
decimal points, rounding and right shifts. Without a module attached use
--display=term or --display=log.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(rt *runtimeConfig) error {
			if cmd.Flags().Changed("loop") {
				rt.settings.Set(sLoop, loopScript)
			}
			startDemo(*rt, rt.settings.demoScript())
			if rt.settings.GetString(sHTTPAddr) != "" {
				startConfigService(*rt)
			}
			return nil
		})
	},
}

var showParams struct {
	decimal int
	round   int
	blank   bool
	shift   int
	places  int
	hold    time.Duration
}

var showCmd = &cobra.Command{
	Use:   "show VALUE",
	Short: "Format one value and show it",
	Example: `  segdemo show 10.46 --places 2 --decimal 1 --round 1
  segdemo show 7 --blank`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("value %q: %w", args[0], err)
		}
		if f < 0 {
			return fmt.Errorf("value %q: negative values do not display", args[0])
		}
		step := demoStep{
			value: numfmt.FixedPoint(f, showParams.places),
			params: numfmt.Params{
				DecimalPos:        showParams.decimal,
				Round:             showParams.round,
				BlankLeadingZeros: showParams.blank,
				RightShift:        showParams.shift,
			},
			hold: showParams.hold,
		}

		return run(func(rt *runtimeConfig) error {
			if _, err := numfmt.FormatStrict(step.value, step.params, rt.layout); err != nil {
				return err
			}
			if step.hold > 0 {
				// leave once the hold is over
				go func() {
					rt.clock.Sleep(step.hold)
					quit(*rt)
				}()
			}
			rt.settings.Set(sLoop, false)
			startDemo(*rt, []demoStep{step})
			return nil
		})
	},
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run only the HTTP control service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(rt *runtimeConfig) error {
			if serveAddr != "" {
				rt.settings.Set(sHTTPAddr, serveAddr)
			}
			if rt.settings.GetString(sHTTPAddr) == "" {
				rt.settings.Set(sHTTPAddr, ":8080")
			}
			startConfigService(*rt)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&displayName, "display", "d", "", "display backend: tm1637, log or term")
	rootCmd.Flags().BoolVar(&loopScript, "loop", false, "repeat the script until interrupted")

	showCmd.Flags().IntVar(&showParams.decimal, "decimal", numfmt.NoDecimal, "digit carrying the decimal point, counted from the left")
	showCmd.Flags().IntVar(&showParams.round, "round", 0, "digits to round away from the right")
	showCmd.Flags().BoolVar(&showParams.blank, "blank", false, "blank leading zeros")
	showCmd.Flags().IntVar(&showParams.shift, "shift", 0, "digits to shift off the right")
	showCmd.Flags().IntVar(&showParams.places, "places", 0, "decimal places kept from VALUE")
	showCmd.Flags().DurationVar(&showParams.hold, "hold", 0, "how long to show it, 0 waits for an interrupt")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides httpAddr")

	rootCmd.AddCommand(showCmd, serveCmd)
}

// run loads the settings, brings up the devices and the LED controller, hands
// the runtime to body to start its workers, then waits for all of them.
func run(body func(rt *runtimeConfig) error) error {
	settings, err := loadSettings(cfgFile)
	if err != nil {
		return err
	}
	if displayName != "" {
		settings.Set(sDisplay, displayName)
	}

	// the terminal display owns stdout
	logs, err := setupLogging(settings, settings.GetString(sDisplay) != displayTerm)
	if err != nil {
		return err
	}
	if logs != nil {
		defer logs.Close()
	}
	settings.Dump()

	rt, err := initRuntime(settings, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	if err := openDevices(&rt); err != nil {
		closeDevices(rt)
		return err
	}
	defer func() {
		if err := closeDevices(rt); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case s := <-sigs:
			log.Printf("Got %v, shutting down", s)
			quit(rt)
		case <-rt.comms.quit:
		}
	}()

	startLEDController(rt)
	if err := body(&rt); err != nil {
		quit(rt)
		wg.Wait()
		return err
	}

	wg.Wait()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
