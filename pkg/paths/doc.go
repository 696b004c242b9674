// Package paths provides centralized path handling for qcl.
//
// It follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/qcl (config.toml, snippets.yaml)
//   - State:  $XDG_STATE_HOME/qcl (qcl.log)
//
// # Environment Variables
//
//   - QCL_CONFIG_DIR: Override the config directory
//   - QCL_STATE_DIR: Override the state directory
//
// # Usage
//
//	p, err := paths.New()
//	if err != nil {
//	    return err
//	}
//	snippets := p.DefaultSnippetsPath() // ~/.config/qcl/snippets.yaml
package paths
