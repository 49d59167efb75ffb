package workflow

import (
	"context"
	"fmt"
)

// GuardFunc decides whether a transition may be taken
type GuardFunc func(ctx context.Context) bool

// StateMachineBuilder builds a configured state machine
type StateMachineBuilder interface {
	// Configure returns the configuration for the given source state
	Configure(state State) StateConfiguration

	// Build creates a machine starting in the given state
	Build(initialState State) StateMachine
}

// StateConfiguration configures transitions out of one state
type StateConfiguration interface {
	Permit(trigger Trigger, toState State) StateConfiguration
	PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration
}

type transition struct {
	toState State
	guard   GuardFunc
}

type stateConfig struct {
	transitions map[Trigger][]transition
}

type stateMachineBuilder struct {
	configurations map[State]*stateConfig
}

type stateMachine struct {
	currentState   State
	configurations map[State]*stateConfig
	observers      []TransitionFunc
}

// NewBuilder creates a new state machine builder
func NewBuilder() StateMachineBuilder {
	return &stateMachineBuilder{configurations: make(map[State]*stateConfig)}
}

func (b *stateMachineBuilder) Configure(state State) StateConfiguration {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}

	cfg, ok := b.configurations[state]
	if !ok {
		cfg = &stateConfig{transitions: make(map[Trigger][]transition)}
		b.configurations[state] = cfg
	}
	return cfg
}

// Build copies the configured transitions so later Configure calls do not leak into built machines
func (b *stateMachineBuilder) Build(initialState State) StateMachine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	configs := make(map[State]*stateConfig, len(b.configurations))
	for state, cfg := range b.configurations {
		transitions := make(map[Trigger][]transition, len(cfg.transitions))
		for trigger, ts := range cfg.transitions {
			transitions[trigger] = append([]transition(nil), ts...)
		}
		configs[state] = &stateConfig{transitions: transitions}
	}

	return &stateMachine{currentState: initialState, configurations: configs}
}

func (c *stateConfig) Permit(trigger Trigger, toState State) StateConfiguration {
	return c.PermitIf(trigger, toState, nil)
}

func (c *stateConfig) PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}
	c.transitions[trigger] = append(c.transitions[trigger], transition{toState: toState, guard: guard})
	return c
}

func (m *stateMachine) State() State {
	return m.currentState
}

// CanFire does not evaluate guards
func (m *stateMachine) CanFire(trigger Trigger) bool {
	if m.currentState.IsTerminal() {
		return false
	}
	cfg, ok := m.configurations[m.currentState]
	if !ok {
		return false
	}
	return len(cfg.transitions[trigger]) > 0
}

func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	from := m.currentState
	if from.IsTerminal() {
		return fmt.Errorf("%w: %s fired in %s", ErrTerminalState, trigger, from)
	}

	cfg, ok := m.configurations[from]
	if !ok || len(cfg.transitions[trigger]) == 0 {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, from)
	}

	// first passing guard wins
	for _, t := range cfg.transitions[trigger] {
		if t.guard == nil || t.guard(ctx) {
			m.currentState = t.toState
			for _, fn := range m.observers {
				fn(from, t.toState, trigger)
			}
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, from)
}

func (m *stateMachine) PermittedTriggers() []Trigger {
	if m.currentState.IsTerminal() {
		return nil
	}
	cfg, ok := m.configurations[m.currentState]
	if !ok {
		return nil
	}

	triggers := make([]Trigger, 0, len(cfg.transitions))
	for trigger := range cfg.transitions {
		triggers = append(triggers, trigger)
	}
	return triggers
}

func (m *stateMachine) OnTransition(fn TransitionFunc) {
	m.observers = append(m.observers, fn)
}
