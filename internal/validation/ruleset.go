package validation

import (
	"fmt"
	"os"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// rulesSchemaConstraint is the rules-file schema versions this build reads.
// Files declaring an incompatible version are rejected rather than
// half-parsed.
const rulesSchemaConstraint = "^1"

// rulesSchemaVersion is the schema version written by SaveFile.
const rulesSchemaVersion = "1.0.0"

// RuleSet is an immutable snapshot of rules handed to a validation pass.
// A pass never observes a partially updated set: mutations build a new
// snapshot and publish it atomically through the Store.
type RuleSet struct {
	rules []Rule
	byID  map[string]int
}

// NewRuleSet builds a snapshot from rules, validating each. Duplicate IDs
// are rejected.
func NewRuleSet(rules []Rule) (*RuleSet, error) {
	set := &RuleSet{
		rules: make([]Rule, len(rules)),
		byID:  make(map[string]int, len(rules)),
	}
	copy(set.rules, rules)

	for i := range set.rules {
		rule := &set.rules[i]
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		if _, dup := set.byID[rule.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", rule.ID)
		}
		set.byID[rule.ID] = i
	}

	return set, nil
}

// Rules returns a copy of the snapshot's rules.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Enabled returns the enabled rules in declaration order. The slice holds
// copied Rule values; only the condition payload pointers are shared with
// the snapshot.
func (s *RuleSet) Enabled() []Rule {
	enabled := make([]Rule, 0, len(s.rules))
	for _, rule := range s.rules {
		if rule.Enabled {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// Get returns the rule with the given ID.
func (s *RuleSet) Get(id string) (Rule, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}

// Len returns the number of rules in the snapshot.
func (s *RuleSet) Len() int { return len(s.rules) }

// Store publishes RuleSet snapshots copy-on-write. Readers take the current
// snapshot once and evaluate against it; writers build a replacement under
// the lock and swap it in atomically.
type Store struct {
	mu      sync.RWMutex
	current *RuleSet
}

// NewStore creates a store seeded with the given snapshot.
func NewStore(set *RuleSet) *Store {
	return &Store{current: set}
}

// Snapshot returns the current rule set. The snapshot stays valid for the
// caller's whole pass regardless of concurrent mutation.
func (st *Store) Snapshot() *RuleSet {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Replace swaps in a whole new rule set.
func (st *Store) Replace(set *RuleSet) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = set
}

// Upsert adds or replaces one rule, publishing a new snapshot.
func (st *Store) Upsert(rule Rule) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	rules := st.current.Rules()
	if i, ok := st.current.byID[rule.ID]; ok {
		rules[i] = rule
	} else {
		rules = append(rules, rule)
	}

	next, err := NewRuleSet(rules)
	if err != nil {
		return err
	}
	st.current = next
	return nil
}

// SetEnabled flips one rule's enabled flag, publishing a new snapshot.
func (st *Store) SetEnabled(id string, enabled bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	i, ok := st.current.byID[id]
	if !ok {
		return fmt.Errorf("no rule with id %q", id)
	}

	rules := st.current.Rules()
	rules[i].Enabled = enabled

	next, err := NewRuleSet(rules)
	if err != nil {
		return err
	}
	st.current = next
	return nil
}

// Remove deletes one rule, publishing a new snapshot.
func (st *Store) Remove(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	i, ok := st.current.byID[id]
	if !ok {
		return fmt.Errorf("no rule with id %q", id)
	}

	rules := st.current.Rules()
	rules = append(rules[:i], rules[i+1:]...)

	next, err := NewRuleSet(rules)
	if err != nil {
		return err
	}
	st.current = next
	return nil
}

// rulesFile is the on-disk layout of a rules configuration file.
type rulesFile struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// LoadFile reads a rules YAML file into a snapshot. The file's declared
// schema version must satisfy the ^1 constraint.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses rules YAML from memory.
func LoadBytes(data []byte) (*RuleSet, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}

	if file.Version != "" {
		version, err := semver.NewVersion(file.Version)
		if err != nil {
			return nil, fmt.Errorf("invalid rules schema version %q: %w", file.Version, err)
		}
		constraint, err := semver.NewConstraint(rulesSchemaConstraint)
		if err != nil {
			return nil, fmt.Errorf("parsing schema constraint: %w", err)
		}
		if !constraint.Check(version) {
			return nil, fmt.Errorf("rules schema version %s is not supported (need %s)", version, rulesSchemaConstraint)
		}
	}

	return NewRuleSet(file.Rules)
}

// SaveFile writes a snapshot back to a rules YAML file, declaring the
// current schema version.
func SaveFile(path string, set *RuleSet) error {
	data, err := yaml.Marshal(rulesFile{Version: rulesSchemaVersion, Rules: set.Rules()})
	if err != nil {
		return fmt.Errorf("encoding rules file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}
	return nil
}
