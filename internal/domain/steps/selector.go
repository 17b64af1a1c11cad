package steps

import (
	"context"
	"fmt"
	"sort"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// WpCliStepName is the name of the step that runs configured WP-CLI
// commands. The step is removed from the universe up front when neither
// WP-CLI files nor commands are configured: it would have nothing to do.
const WpCliStepName = "wp-cli"

// Selector resolves flags, command-line names and configuration into an
// ordered list of instantiated steps plus a diagnostic summary. A Selector
// is reusable; every Resolve call works on fresh per-run state.
type Selector struct {
	defaults *NameMap
	kinds    map[string]Registration
	logger   ports.Logger
}

// NewSelector creates a Selector over the default step universe and the
// registry of step kinds that custom and command steps may refer to.
func NewSelector(defaults *NameMap, kinds map[string]Registration, logger ports.Logger) *Selector {
	if defaults == nil {
		defaults = NewNameMap()
	}
	return &Selector{defaults: defaults, kinds: kinds, logger: logger}
}

// selected is one picked universe slot, remembered with the name it was
// selected under.
type selected struct {
	name  string
	entry mapEntry
}

// Resolve runs one resolution: mode decode, universe assembly, skip
// filtering, selection, ordering and instantiation. It never aborts on a
// single bad entry; everything wrong is counted in the returned
// Resolution's diagnostics while valid steps still come back usable.
func (s *Selector) Resolve(ctx context.Context, rc *RunContext, flags Flags, names ...string) *Resolution {
	m := decodeFlags(flags)
	diag := newDiagnostics()
	logger := s.logger.With(ports.F("run", diag.RunID))

	// Names are only meaningful in command mode.
	if !m.command {
		names = nil
	}
	tracked := append([]string(nil), names...)

	universe := s.assembleUniverse(m, rc.Config)

	if !rc.Config.NotEmpty(config.KeyWpCliFiles) && !rc.Config.NotEmpty(config.KeyWpCliCommands) {
		universe.Delete(WpCliStepName)
	}

	if m.optOut && len(tracked) == 0 {
		diag.EmptyOptOut = true
		universe = NewNameMap()
		tracked = nil
	} else {
		tracked = s.filterSkipped(ctx, logger, m, rc.Config, universe, tracked, diag)
	}

	picks := s.selectSteps(m, universe, tracked, diag)
	ordered := orderRunsLast(picks)
	result := s.instantiate(ctx, logger, rc, ordered, diag)

	return &Resolution{steps: result, diag: diag}
}

// assembleUniverse builds the ordered universe: defaults first, then custom
// steps unless suppressed, then command-triggered steps in command mode.
// Later entries overwrite earlier ones on name collision; configured maps
// are merged in sorted-name order to keep resolution deterministic.
func (s *Selector) assembleUniverse(m modes, cfg *config.Config) *NameMap {
	universe := s.defaults.Clone()
	if !m.skipCustom {
		s.mergeConfigured(universe, cfg.StringMap(config.KeyCustomSteps))
	}
	if m.command {
		s.mergeConfigured(universe, cfg.StringMap(config.KeyCommandSteps))
	}
	return universe
}

func (s *Selector) mergeConfigured(universe *NameMap, configured map[string]string) {
	names := make([]string, 0, len(configured))
	for name := range configured {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kind := configured[name]
		if reg, ok := s.kinds[kind]; ok {
			universe.Set(name, reg)
		} else {
			universe.SetUnknown(name, kind)
		}
	}
}

// filterSkipped drops universe entries named by the opt-out input or the
// configuration's skip list and accounts for requests that matched nothing.
// It returns the tracked command-line names, shrunk by the ones a config
// skip took away.
func (s *Selector) filterSkipped(
	ctx context.Context,
	logger ports.Logger,
	m modes,
	cfg *config.Config,
	universe *NameMap,
	tracked []string,
	diag *Diagnostics,
) []string {
	skipByInput := make(map[string]bool)
	if m.optOut {
		for _, name := range tracked {
			skipByInput[name] = true
		}
	}
	skipByConfig := make(map[string]bool)
	if !m.ignoreSkipConfig {
		for _, name := range cfg.Strings(config.KeySkipSteps) {
			skipByConfig[name] = true
		}
	}

	if len(skipByInput) == 0 && len(skipByConfig) == 0 {
		return tracked
	}

	matchedInput, matchedConfig := 0, 0
	for _, name := range universe.Names() {
		inInput := skipByInput[name]
		inConfig := skipByConfig[name]
		if !inInput && !inConfig {
			continue
		}
		universe.Delete(name)
		if inInput {
			matchedInput++
		}
		if inConfig {
			matchedConfig++
			if !m.command {
				logger.Debug(ctx, fmt.Sprintf("- Step '%s' will be skipped: disabled in config.", name))
			}
			if !m.optOut {
				if shrunk, removed := removeName(tracked, name); removed {
					tracked = shrunk
					diag.IgnoredByConfig++
				}
			}
		}
	}

	diag.InputErrors += len(skipByInput) - matchedInput
	diag.ConfigErrors += len(skipByConfig) - matchedConfig
	return tracked
}

// selectSteps picks the result set. Outside command mode, and in opt-out
// mode, the filtered universe passes through unchanged in its current
// order; otherwise each remaining tracked name is looked up in the order it
// was given and a miss counts as an input error.
func (s *Selector) selectSteps(m modes, universe *NameMap, tracked []string, diag *Diagnostics) []selected {
	if !m.command || m.optOut {
		picks := make([]selected, 0, universe.Len())
		for _, name := range universe.Names() {
			entry, _ := universe.get(name)
			picks = append(picks, selected{name: name, entry: entry})
		}
		return picks
	}

	picks := make([]selected, 0, len(tracked))
	for _, name := range tracked {
		entry, ok := universe.get(name)
		if !ok {
			diag.InputErrors++
			continue
		}
		picks = append(picks, selected{name: name, entry: entry})
	}
	return picks
}

// orderRunsLast defers steps of the distinguished runs-last kind to the end
// of the list, preserving relative order within both partitions.
func orderRunsLast(picks []selected) []selected {
	ordered := make([]selected, 0, len(picks))
	var last []selected
	for _, pick := range picks {
		if pick.entry.known && pick.entry.reg.RunsLast {
			last = append(last, pick)
			continue
		}
		ordered = append(ordered, pick)
	}
	return append(ordered, last...)
}

// instantiate constructs every selected step. A failing or misbehaving
// entry is counted as a config error and dropped; it never aborts the run.
func (s *Selector) instantiate(
	ctx context.Context,
	logger ports.Logger,
	rc *RunContext,
	picks []selected,
	diag *Diagnostics,
) []Step {
	result := make([]Step, 0, len(picks))
	for _, pick := range picks {
		if !pick.entry.known {
			diag.ConfigErrors++
			logger.Debug(ctx, "configured step identifier does not resolve to an executable step",
				ports.F("step", pick.name), ports.F("kind", pick.entry.kind))
			continue
		}

		step, err := buildStep(pick.entry.reg.Factory, rc)
		if err != nil {
			diag.ConfigErrors++
			logger.Debug(ctx, "step construction failed",
				ports.F("step", pick.name), ports.F("error", err))
			continue
		}
		if step == nil || step.Name() != pick.name {
			diag.ConfigErrors++
			logger.Debug(ctx, "step reports a different name than it was selected under",
				ports.F("step", pick.name))
			continue
		}
		result = append(result, step)
	}
	return result
}

// buildStep shields the run from misbehaving factories: a panic during
// construction is translated into an error like any other failure.
func buildStep(factory Factory, rc *RunContext) (step Step, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			step = nil
			err = fmt.Errorf("step construction panicked: %v", recovered)
		}
	}()
	if factory == nil {
		return nil, fmt.Errorf("step has no factory")
	}
	return factory(rc)
}

func removeName(names []string, name string) ([]string, bool) {
	removed := false
	remaining := names[:0]
	for _, existing := range names {
		if existing == name {
			removed = true
			continue
		}
		remaining = append(remaining, existing)
	}
	return remaining, removed
}
