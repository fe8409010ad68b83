package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// Output formats for session parameters.
const (
	formatJSON       = "json"
	formatTOML       = "toml"
	formatProperties = "properties"
)

// writeParameters prints params in the requested format.
func writeParameters(cmd *cobra.Command, params domain.SessionParameters, format string) error {
	switch strings.ToLower(format) {
	case "", formatProperties:
		for _, key := range params.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, escapeProperty(params[key]))
		}
		return nil

	case formatJSON:
		data, err := json.MarshalIndent(map[string]string(params), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal parameters: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil

	case formatTOML:
		data, err := toml.Marshal(map[string]string(params))
		if err != nil {
			return fmt.Errorf("failed to marshal parameters: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil

	default:
		return fmt.Errorf("%w: unknown format %q (json, toml or properties)", domain.ErrInvalidInput, format)
	}
}

// escapeProperty escapes the characters that end or continue a value in a
// Java properties file.
func escapeProperty(s string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`).Replace(s)
}
