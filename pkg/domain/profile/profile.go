// Package profile validates profile edits and turns them into field updates.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
	"github.com/fitai/fitai-server/pkg/types"
)

var (
	FitnessGoals   = []string{"weight_loss", "muscle_gain", "maintenance", "endurance"}
	ActivityLevels = []string{"sedentary", "light", "moderate", "active", "very_active"}
	Genders        = []string{"male", "female", "other"}
)

// Number accepts a JSON number or a numeric string, as sent by HTML forms.
// An empty string or null leaves it unset.
type Number struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = Number{}
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = Number{Value: f, Set: true}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number{Value: f, Set: true}
	return nil
}

// Update is the PUT body of the profile endpoint. Every field is optional.
type Update struct {
	Age           Number `json:"age"`
	Gender        string `json:"gender"`
	Weight        Number `json:"weight"`
	Height        Number `json:"height"`
	FitnessGoal   string `json:"fitness_goal"`
	ActivityLevel string `json:"activity_level"`
}

// Fields returns the Firestore field updates for u. Only present, non-zero
// fields are copied. An update that touches nothing is a validation error.
func (u Update) Fields(now time.Time) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	for _, n := range []struct {
		key string
		num Number
	}{{"age", u.Age}, {"weight", u.Weight}, {"height", u.Height}} {
		if n.num.Set && (math.IsNaN(n.num.Value) || math.IsInf(n.num.Value, 0)) {
			return nil, invalid(n.key, n.key+" must be a number")
		}
	}

	if u.Age.Set && u.Age.Value != 0 {
		if u.Age.Value != float64(int(u.Age.Value)) || u.Age.Value < 1 || u.Age.Value > 120 {
			return nil, invalid("age", "age must be a whole number between 1 and 120")
		}
		fields["age"] = int(u.Age.Value)
	}
	if u.Weight.Set && u.Weight.Value != 0 {
		if u.Weight.Value < 0 || u.Weight.Value > 500 {
			return nil, invalid("weight", "weight must be between 0 and 500 kg")
		}
		fields["weight"] = u.Weight.Value
	}
	if u.Height.Set && u.Height.Value != 0 {
		if u.Height.Value < 0 || u.Height.Value > 300 {
			return nil, invalid("height", "height must be between 0 and 300 cm")
		}
		fields["height"] = u.Height.Value
	}

	for _, f := range []struct {
		key     string
		value   string
		allowed []string
	}{
		{"gender", u.Gender, Genders},
		{"fitness_goal", u.FitnessGoal, FitnessGoals},
		{"activity_level", u.ActivityLevel, ActivityLevels},
	} {
		v := strings.ToLower(strings.TrimSpace(f.value))
		if v == "" {
			continue
		}
		if !contains(f.allowed, v) {
			return nil, invalid(f.key, fmt.Sprintf("%s must be one of %s", f.key, strings.Join(f.allowed, ", ")))
		}
		fields[f.key] = v
	}

	if len(fields) == 0 {
		return nil, fitaierrors.ErrValidation.WithMessage("no profile fields to update")
	}

	fields["updated_at"] = now
	return fields, nil
}

// ChangedFields lists the profile keys in fields, sorted, without bookkeeping keys.
func ChangedFields(fields map[string]interface{}) []string {
	out := make([]string, 0, len(fields))
	for k := range fields {
		if k == "updated_at" {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UpdatedEvent builds the plan-regeneration event payload for a saved profile.
func UpdatedEvent(user *types.UserProfile, fields map[string]interface{}) *types.ProfileUpdatedEvent {
	return &types.ProfileUpdatedEvent{
		UserId:        user.UserId,
		UpdatedFields: ChangedFields(fields),
		FitnessGoal:   user.FitnessGoal,
		ActivityLevel: user.ActivityLevel,
		UpdatedAt:     user.UpdatedAt,
	}
}

func invalid(field, msg string) error {
	return fitaierrors.ErrValidation.WithMessage(msg).WithMetadata("field", field)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
