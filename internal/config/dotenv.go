package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileKey names an explicit .env file to load before the default locations.
const EnvFileKey = "ENV_FILE"

// Environ returns the process environment overlaid on the first .env file
// found. Variables already set in the process always win. Read errors are
// ignored: nothing may be written to stdout before the MCP session starts.
func Environ(envFile string) map[string]string {
	env := processEnv()
	if envFile == "" {
		envFile = env[EnvFileKey]
	}
	for _, path := range envFileCandidates(envFile) {
		values, err := godotenv.Read(path)
		if err != nil {
			continue
		}
		for k, v := range values {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
		break
	}
	return env
}

// FromEnviron resolves the configuration from the process environment and
// the .env search path.
func FromEnviron(envFile string) Config {
	return Resolve(Environ(envFile))
}

// envFileCandidates lists the .env search order: the explicit file, the
// working directory, then the directory holding the executable.
func envFileCandidates(explicit string) []string {
	var candidates []string
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if abs, err := filepath.Abs(explicit); err == nil {
			explicit = abs
		}
		candidates = append(candidates, explicit)
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, ".env"))
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), ".env"))
	}
	return candidates
}

func processEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}
