package domain

import (
	"fmt"
	"strconv"
	"time"
)

// CoordinationServer is one member of the coordination-service ensemble.
type CoordinationServer struct {
	Host string
	Port uint16
}

// Addr returns the server as a dialable host:port string.
func (s CoordinationServer) Addr() string {
	return s.Host + ":" + strconv.Itoa(int(s.Port))
}

// CoordinationConfig holds the coordination-service ensemble and session
// settings. The server order is preserved from the configuration file.
type CoordinationConfig struct {
	Servers        []CoordinationServer
	SessionTimeout time.Duration
}

// Endpoints returns the ensemble as dialable host:port strings, in the
// configured order.
func (c CoordinationConfig) Endpoints() []string {
	out := make([]string, len(c.Servers))
	for i, s := range c.Servers {
		out[i] = s.Addr()
	}
	return out
}

// Validate checks that the ensemble is usable: at least one server, every
// server addressable, and a positive session timeout.
func (c CoordinationConfig) Validate() error {
	if len(c.Servers) == 0 {
		return fmt.Errorf("coordination ensemble has no servers")
	}
	for i, s := range c.Servers {
		if s.Host == "" {
			return fmt.Errorf("coordination server %d has an empty host", i)
		}
		if s.Port == 0 {
			return fmt.Errorf("coordination server %q has no port", s.Host)
		}
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("coordination session timeout must be positive, got %s", c.SessionTimeout)
	}
	return nil
}
