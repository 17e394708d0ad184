package ability

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Site names an engine call site that scripted attributes may hook.
type Site int

const (
	SiteNone Site = iota
	SiteStat
	SiteCritStage
	SiteDamageBoost
	SiteReceivedDamage
	SiteAccuracy
)

var siteNames = [...]string{"", "on_stat", "on_crit_stage", "on_damage_boost", "on_received_damage", "on_accuracy"}

// String returns the hook function name scripts define for the site.
func (s Site) String() string {
	if s < SiteNone || int(s) >= len(siteNames) {
		return fmt.Sprintf("site(%d)", int(s))
	}
	return siteNames[s]
}

// UnmarshalYAML decodes a site from its hook function name.
func (s *Site) UnmarshalYAML(value *yaml.Node) error {
	key := strings.ToLower(strings.TrimSpace(value.Value))
	for i, n := range siteNames {
		if i > 0 && n == key {
			*s = Site(i)
			return nil
		}
	}
	return fmt.Errorf("ability: unknown hook site %q", value.Value)
}

// Hook is the externally registered handler for Scripted attributes. It
// receives the call site's parameters as plain numbers and the current value
// of the holder, and returns the new value.
//
// Implementations must return value unchanged when they have nothing to say.
type Hook interface {
	Call(script string, site Site, params map[string]float64, value float64) float64
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// callScripts runs every Scripted attribute of a for site, in declaration order.
func (a *Ability) callScripts(h Hook, site Site, params map[string]float64, value *float64) {
	if a == nil || h == nil {
		return
	}
	for i := range a.Attrs {
		at := &a.Attrs[i]
		if at.Kind == Scripted && at.Site == site {
			*value = h.Call(at.Script, site, params, *value)
		}
	}
}
