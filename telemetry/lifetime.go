package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int
	Letter    byte
	Origin    BirthKind
	ParentID  uint32 // meaningful only for bred agents

	Kills      int
	Children   int
	PeakEnergy float64
}

// Age returns the number of ticks lived as of currentTick.
func (s *LifetimeStats) Age(currentTick int) int {
	return currentTick - s.BirthTick
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(agentID uint32, birthTick int, letter byte, origin BirthKind, parentID uint32) {
	lt.stats[agentID] = &LifetimeStats{
		BirthTick: birthTick,
		Letter:    letter,
		Origin:    origin,
		ParentID:  parentID,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(agentID uint32) *LifetimeStats {
	return lt.stats[agentID]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(agentID uint32) *LifetimeStats {
	stats := lt.stats[agentID]
	delete(lt.stats, agentID)
	return stats
}

// RecordKill increments kill count.
func (lt *LifetimeTracker) RecordKill(agentID uint32) {
	if s := lt.stats[agentID]; s != nil {
		s.Kills++
	}
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(agentID uint32, energy float64) {
	if s := lt.stats[agentID]; s != nil {
		s.PeakEnergy = max(s.PeakEnergy, energy)
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// LetterCount returns the number of distinct archetype letters among
// tracked agents.
func (lt *LifetimeTracker) LetterCount() int {
	seen := make(map[byte]struct{})
	for _, s := range lt.stats {
		seen[s.Letter] = struct{}{}
	}
	return len(seen)
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	BirthTick  int     `json:"birth_tick"`
	Origin     string  `json:"origin"`
	ParentID   uint32  `json:"parent_id,omitempty"`
	Kills      int     `json:"kills"`
	Children   int     `json:"children"`
	PeakEnergy float64 `json:"peak_energy"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (s *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if s == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		BirthTick:  s.BirthTick,
		Origin:     s.Origin.String(),
		ParentID:   s.ParentID,
		Kills:      s.Kills,
		Children:   s.Children,
		PeakEnergy: s.PeakEnergy,
	}
}
