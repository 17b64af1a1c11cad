package steps

// Flags select the resolution mode. Each bit is independent; the opt-out,
// skip-custom and ignore-skip-config bits are only meaningful combined with
// ModeCommand.
type Flags int

const (
	// ModeOptOut inverts command-line names: they name steps to exclude.
	ModeOptOut Flags = 1
	// ModeSkipCustom excludes user-defined custom steps from the universe.
	ModeSkipCustom Flags = 2
	// ModeIgnoreSkipConfig disregards the configuration's own skip list.
	ModeIgnoreSkipConfig Flags = 4
	// ModeCommand drives resolution by explicit command-line names instead
	// of "run everything".
	ModeCommand Flags = 16
)

// modes is the decoded form of Flags used through one resolution run.
type modes struct {
	command          bool
	optOut           bool
	skipCustom       bool
	ignoreSkipConfig bool
}

// decodeFlags decodes the bitmask. Outside command mode the dependent bits
// are forced off regardless of their value.
func decodeFlags(flags Flags) modes {
	m := modes{command: flags&ModeCommand != 0}
	if !m.command {
		return m
	}
	m.optOut = flags&ModeOptOut != 0
	m.skipCustom = flags&ModeSkipCustom != 0
	m.ignoreSkipConfig = flags&ModeIgnoreSkipConfig != 0
	return m
}
