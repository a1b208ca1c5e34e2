package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"dscheirer.com/segdemo/numfmt"
)

// setting keys
const (
	sBackend      = "backend"
	sDisplay      = "display"
	sClkPin       = "clkPin"
	sDioPin       = "dioPin"
	sLedPin       = "ledPin"
	sLayout       = "layout"
	sBrightness   = "brightness"
	sDebug        = "debugDump"
	sTrace        = "portTrace"
	sLogFile      = "logFile"
	sStartupDelay = "startupDelay"
	sBitDelay     = "bitDelay"
	sLoop         = "loop"
	sHTTPAddr     = "httpAddr"
	sHTTPUser     = "httpUser"
	sHTTPSecret   = "httpSecret"
)

// array valued keys, parsed on their own
const (
	sLayoutOrder = "layoutOrder"
	sScript      = "script"
)

// display backends
const (
	displayTM1637 = "tm1637"
	displayLog    = "log"
	displayTerm   = "term"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings    map[string]interface{}
	layoutOrder []int
	script      []demoStep
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sBackend] = "rpio"
	s[sDisplay] = displayTM1637
	s[sClkPin] = 23
	s[sDioPin] = 24
	s[sLedPin] = 18
	s[sLayout] = numfmt.Standard4.Name
	s[sBrightness] = byte(2)
	s[sDebug] = false
	s[sTrace] = false
	s[sLogFile] = ""
	s[sStartupDelay] = 100 * time.Millisecond
	s[sBitDelay] = 5 * time.Microsecond
	s[sLoop] = false
	s[sHTTPAddr] = ""
	s[sHTTPUser] = "segdemo"
	s[sHTTPSecret] = ""

	// no GPIO off the Pi
	if runtime.GOARCH != "arm" && runtime.GOARCH != "arm64" {
		s[sBackend] = "sim"
	}

	return configSettings{settings: s}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, dataType, _, err := jsonparser.Get(data, k); err != nil || dataType == jsonparser.NotExist {
			continue
		}

		var err error
		switch initVal.(type) {
		case uint8:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// try strconv, so "0x07" works too
				valString, err2 := jsonparser.GetString(data, k)
				if err2 == nil {
					val, err = strconv.ParseInt(valString, 0, 64)
				}
			}
			if err == nil && (val < 0 || val > 255) {
				err = fmt.Errorf("%s: %d does not fit in a byte", k, val)
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try "true" and "false"
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}

	order, err := parseLayoutOrder(data)
	if err != nil {
		return err
	}
	s.layoutOrder = order

	script, err := parseScript(data)
	if err != nil {
		return err
	}
	s.script = script

	return nil
}

func parseLayoutOrder(data []byte) ([]int, error) {
	var order []int
	var perr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if perr != nil {
			return
		}
		if dataType != jsonparser.Number {
			perr = fmt.Errorf("%s: %q is not a number", sLayoutOrder, value)
			return
		}
		n, err := jsonparser.ParseInt(value)
		if err != nil {
			perr = fmt.Errorf("%s: %w", sLayoutOrder, err)
			return
		}
		order = append(order, int(n))
	}, sLayoutOrder)
	if err == jsonparser.KeyPathNotFoundError {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sLayoutOrder, err)
	}
	return order, perr
}

// loadSettings reads the config file over the defaults. An empty path means
// defaults only.
func loadSettings(configFile string) (configSettings, error) {
	s := defaultSettings()
	if configFile == "" {
		return s, nil
	}

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return s, fmt.Errorf("could not load conf file '%s': %w", configFile, err)
	}

	log.Printf("Reading configuration from '%s'", configFile)
	if err := s.settingsFromJSON(data); err != nil {
		return s, fmt.Errorf("conf file '%s': %w", configFile, err)
	}
	return s, nil
}

func initSettings(configFile string) configSettings {
	s, err := loadSettings(configFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	return s
}

// layout resolves the configured digit order, an explicit layoutOrder wins
// over the named preset.
func (s *configSettings) layout() (numfmt.Layout, error) {
	if len(s.layoutOrder) > 0 {
		return numfmt.NewLayout("custom", s.layoutOrder)
	}
	return numfmt.LayoutByName(s.GetString(sLayout))
}

// demoScript is the configured script, or the built-in one.
func (s *configSettings) demoScript() []demoStep {
	if len(s.script) > 0 {
		return s.script
	}
	return defaultScript()
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

// Set overrides a setting, used for command line flags.
func (s *configSettings) Set(key string, val interface{}) {
	s.settings[key] = val
}

func (s *configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("%s : %T: %v", k, s.settings[k], s.settings[k])
	}
	if len(s.layoutOrder) > 0 {
		log.Printf("%s : %v", sLayoutOrder, s.layoutOrder)
	}
	log.Printf("%s : %d steps", sScript, len(s.demoScript()))
}
