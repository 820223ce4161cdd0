// Package telemetry provides population statistics, performance timing,
// bookmarks, snapshots and the hall of fame.
package telemetry

// BirthKind identifies how an agent entered the population.
type BirthKind uint8

const (
	BirthSpawn    BirthKind = iota // random spawn or resource rain
	BirthSexual                    // two-parent reproduction
	BirthAsexual                   // self-reproduction
	BirthInjected                  // injected by an inspection tool
)

var birthKindNames = [...]string{"spawn", "sexual", "asexual", "injected"}

func (k BirthKind) String() string {
	if int(k) >= len(birthKindNames) {
		return "unknown"
	}
	return birthKindNames[k]
}

// DeathCause identifies why an agent was pruned.
type DeathCause uint8

const (
	DeathStarvation DeathCause = iota
	DeathOldAge
	DeathPredation
)

var deathCauseNames = [...]string{"starvation", "old_age", "predation"}

func (c DeathCause) String() string {
	if int(c) >= len(deathCauseNames) {
		return "unknown"
	}
	return deathCauseNames[c]
}
