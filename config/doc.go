// Package config provides application configuration management.
//
// The config package handles loading and validation of the application's
// configuration from YAML files and from the standard Docker connection
// environment (DOCKER_HOST and friends). All environment reading happens
// here; the rest of the application receives explicit configuration values.
//
// Usage:
//
//	cfg, err := config.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Default sandbox image: %s\n", cfg.Sandbox.DefaultImage)
package config
