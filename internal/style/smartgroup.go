package style

import (
	"fmt"
	"strings"
)

// ConditionOp selects how a smart group condition tests an entity.
type ConditionOp string

const (
	OpHasTag    ConditionOp = "tag"
	OpLacksTag  ConditionOp = "!tag"
	OpNameHas   ConditionOp = "name"
	OpNameLacks ConditionOp = "!name"
)

// ParseConditionOp validates a condition operator.
func ParseConditionOp(raw string) (ConditionOp, error) {
	op := ConditionOp(strings.TrimSpace(raw))
	switch op {
	case OpHasTag, OpLacksTag, OpNameHas, OpNameLacks:
		return op, nil
	}
	return "", fmt.Errorf("unknown smart group condition %q", raw)
}

// Condition is one clause of a smart group query.
type Condition struct {
	Op    ConditionOp
	Param string
}

// SmartGroup is a saved query. Membership is evaluated on demand, so it
// follows renames and tag edits without bookkeeping.
type SmartGroup struct {
	ID         int
	Name       string
	MatchAll   bool
	Conditions []Condition
}

func (g SmartGroup) matches(name string, tags map[string]struct{}) bool {
	if len(g.Conditions) == 0 {
		return false
	}
	for _, cond := range g.Conditions {
		ok := cond.matches(name, tags)
		if g.MatchAll && !ok {
			return false
		}
		if !g.MatchAll && ok {
			return true
		}
	}
	return g.MatchAll
}

func (c Condition) matches(name string, tags map[string]struct{}) bool {
	param := strings.ToLower(strings.TrimSpace(c.Param))
	switch c.Op {
	case OpHasTag:
		_, ok := tags[param]
		return ok
	case OpLacksTag:
		_, ok := tags[param]
		return !ok
	case OpNameHas:
		return strings.Contains(strings.ToLower(name), param)
	case OpNameLacks:
		return !strings.Contains(strings.ToLower(name), param)
	}
	return false
}
