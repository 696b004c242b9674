package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Fill in command snippets and print the result"
	MsgCLIShort     = "Resolve a snippet with inline prompts"
	MsgTUIShort     = "Resolve a snippet in a full-screen picker"
	MsgListShort    = "List available snippets"
	MsgShowShort    = "Show a snippet and its placeholders"
	MsgCheckShort   = "Check snippet files for malformed placeholders"
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"

	// Status messages
	MsgCreatedDefault = "Created %s with an example snippet\n"
	MsgNoSnippets     = "No snippets found."
	MsgCheckOK        = "%d snippets in %d files, no problems found"
	MsgCheckProblems  = "%d problems found"
	MsgUnresolved     = "Left unresolved: %s"
)

// Flag descriptions
const (
	FlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	FlagFile    = "Additional snippet file, merged after the default (repeatable)"
	FlagLogFile = "Write logs to this file"
	FlagAnswer  = "Answer a prompt without asking, as name=value (repeatable)"
	FlagShell   = "Shell used to run lookup commands"
)

// Long descriptions
const (
	MsgRootLong = `qcl picks a snippet (a shell command template), fills in its
placeholders and prints the finished command on stdout.

Placeholders look like [[name=default from:"cmd" select:N order:M]]:
  name=default   free text input, pre-filled with default
  from:"cmd"     pick one output line of cmd
  select:N       use column N (0-based) of the picked line
  order:M        resolve placeholders with lower M first

Snippets are read from $XDG_CONFIG_HOME/qcl/snippets.yaml and any file
given with --file.`

	MsgRootExample = `  # Pick a snippet and fill it in
  qcl

  # Resolve a snippet by name without prompting
  qcl cli deploy --answer env=prod

  # Run the result
  eval "$(qcl cli greet)"`
)
