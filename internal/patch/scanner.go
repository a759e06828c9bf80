package patch

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"classpatch/internal/diagnostic"
	"classpatch/internal/gate"
	"classpatch/internal/logging"
	"classpatch/internal/mapping"
	"classpatch/internal/plan"
	"classpatch/internal/transform"
)

// Scanner builds transformer units from patches. Scanning is meant to run
// once, before any class is transformed; a Scanner is not safe for
// concurrent use.
type Scanner struct {
	resolver *mapping.Resolver
	services gate.Services
	logger   *zap.Logger

	diags diagnostic.Diagnostics
}

// NewScanner creates a scanner. A nil resolver maps every name to itself and
// a nil logger discards output.
func NewScanner(resolver *mapping.Resolver, services gate.Services, logger *zap.Logger) *Scanner {
	if resolver == nil {
		resolver, _ = mapping.NewResolver(nil, 0)
	}

	return &Scanner{
		resolver: resolver,
		services: services,
		logger:   logging.OrNop(logger),
	}
}

// Diagnostics returns the findings collected by every scan so far.
func (s *Scanner) Diagnostics() diagnostic.Diagnostics {
	return s.diags
}

// Scan returns one unit per accepted injection point of p, in declaration
// order. Gate rejections are skipped. A target or parameter that cannot be
// resolved fails the whole scan.
func (s *Scanner) Scan(p Patch) ([]*transform.Unit, error) {
	if p == nil {
		return nil, nil
	}

	patchName := Name(p)
	logger := s.logger.With(zap.String("patch", patchName))

	var (
		units []*transform.Unit
		seen  = make(map[string]bool)
	)

	for i, inj := range p.Injections() {
		name := inj.Name
		if name == "" {
			name = fmt.Sprintf("injection#%d", i)
		}

		if !s.eligible(patchName, name, inj, logger) {
			continue
		}

		if pred := gate.Parse(inj.When); !pred.Eval(s.services) {
			logger.Info("Skipping injection",
				zap.String("injection", name),
				zap.String("service", pred.Service),
				zap.Bool("present", s.services.Has(pred.Service)))
			s.diags.AddInfo(diagnostic.CodeInjectionSkipped,
				fmt.Sprintf("gated on %q", pred.String()), patchName, name)

			continue
		}

		if seen[name] {
			s.diags.AddWarning(diagnostic.CodeDuplicateCallable,
				"injection declared more than once, keeping the first accepted", patchName, name)

			continue
		}

		seen[name] = true

		target, err := s.resolver.ResolveMethod(inj.Target)
		if err != nil {
			return nil, fmt.Errorf("patch %s: injection %s: target: %w", patchName, name, err)
		}

		bindings, err := plan.Build(inj.Fn, inj.Args, s.resolver)
		if err != nil {
			return nil, fmt.Errorf("patch %s: injection %s: %w", patchName, name, err)
		}

		logger.Debug("Registered injection",
			zap.String("injection", name),
			zap.Stringer("target", target))

		units = append(units, transform.NewUnit(patchName, name, target, bindings, s.logger))
	}

	return units, nil
}

// ScanAll scans every patch in order and stops at the first failure.
func (s *Scanner) ScanAll(patches ...Patch) ([]*transform.Unit, error) {
	var units []*transform.Unit

	for _, p := range patches {
		u, err := s.Scan(p)
		if err != nil {
			return nil, err
		}

		units = append(units, u...)
	}

	return units, nil
}

// eligible reports whether a declaration is an injection point at all.
func (s *Scanner) eligible(patchName, name string, inj Injection, logger *zap.Logger) bool {
	v := reflect.ValueOf(inj.Fn)
	if inj.Fn == nil || inj.Target == nil || (v.Kind() == reflect.Func && v.IsNil()) {
		logger.Debug("Ignoring declaration without callable or target", zap.String("injection", name))
		s.diags.AddInfo(diagnostic.CodeInjectionIgnored,
			"declaration needs both a callable and a target", patchName, name)

		return false
	}

	if v.Kind() != reflect.Func {
		s.diags.AddWarning(diagnostic.CodeNotCallable,
			fmt.Sprintf("callable is %T, not a func", inj.Fn), patchName, name)

		return false
	}

	return true
}
