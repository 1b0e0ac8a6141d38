package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses args (normally os.Args[1:]) into a partial
// [StructuredConfig]. Unset flags leave their fields zero so they do not
// override other sources during merging.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-d database DSN ("memory", sqlite path, or postgres URI)
//	-c/-config json file path with configs
//	-provider provider kind ("simulated" or "http")
//	-provider-address watch bridge base URL
//	-provider-timeout watch bridge request timeout (e.g. "10s")
//	-failure-rate simulated fetch failure probability
//	-connect-failure-rate simulated disconnect probability
//	-deny-permission simulate a refused permission prompt
//	-sync-interval recurring sync period (e.g. "5m")
//	-history-limit number of cached history records
//	-log-level zerolog level name
//	-log-file log file path
//	-token-sign-key control API JWT signing key
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var providerKind string
	var providerAddress string
	var providerTimeout time.Duration
	var failureRate, connectFailureRate *float64
	var denyPermission bool
	var syncInterval time.Duration
	var historyLimit int
	var logLevel, logFile string
	var tokenSignKey string

	fs := flag.NewFlagSet("healthsync", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&providerKind, "provider", "", "Provider kind (simulated, http)")
	fs.StringVar(&providerAddress, "provider-address", "", "Watch bridge base URL")
	fs.DurationVar(&providerTimeout, "provider-timeout", 0, "Watch bridge request timeout (e.g., 10s)")
	fs.Func("failure-rate", "Simulated fetch failure probability [0,1]", rateFlag(&failureRate))
	fs.Func("connect-failure-rate", "Simulated disconnect probability [0,1]", rateFlag(&connectFailureRate))
	fs.BoolVar(&denyPermission, "deny-permission", false, "Simulate refused health permissions")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Recurring sync period (e.g., 5m)")
	fs.IntVar(&historyLimit, "history-limit", 0, "Number of cached history records")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Control API token signing key")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel:     logLevel,
			LogFile:      logFile,
			TokenSignKey: tokenSignKey,
		},
		Provider: Provider{
			Kind:               providerKind,
			FailureRate:        failureRate,
			ConnectFailureRate: connectFailureRate,
			DenyPermission:     denyPermission,
			HTTPAddress:        providerAddress,
			RequestTimeout:     providerTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			HistoryLimit: historyLimit,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func rateFlag(dst **float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be within 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
