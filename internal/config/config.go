package config

import (
	"fmt"
	"os"
	"time"

	"wayfarer/internal/domain/dialogue"

	"gopkg.in/yaml.v3"
)

// Tuning collects every behavioral knob of the agent. Values are plain
// numbers so a YAML file can override any subset; zero fields fall back to
// defaults.
type Tuning struct {
	// Survival thresholds. Vitals run 0..VitalMax.
	VitalMax            int `yaml:"vital_max"`
	UrgentEnergyBelow   int `yaml:"urgent_energy_below"`
	UrgentHungerBelow   int `yaml:"urgent_hunger_below"`
	ModerateEnergyBelow int `yaml:"moderate_energy_below"`
	ModerateHungerBelow int `yaml:"moderate_hunger_below"`
	SeekFoodBelowHunger int `yaml:"seek_food_below_hunger"`
	SeekRestBelowEnergy int `yaml:"seek_rest_below_energy"`

	// Conversation windows, in ticks.
	InitiateWaitTicks     int64 `yaml:"initiate_wait_ticks"`
	ReplyTimeoutTicks     int64 `yaml:"reply_timeout_ticks"`
	PeerCooldownTicks     int64 `yaml:"peer_cooldown_ticks"`
	UrgentMinExchanges    int   `yaml:"urgent_min_exchanges"`
	ModerateMinExchanges  int   `yaml:"moderate_min_exchanges"`
	MaxExchanges          int   `yaml:"max_exchanges"`
	NaturalCloseExchanges int   `yaml:"natural_close_exchanges"`
	SummaryMinExchanges   int   `yaml:"summary_min_exchanges"`

	// Movement and exploration.
	InteractRange      float64 `yaml:"interact_range"`
	GoodbyeTravelTicks int64   `yaml:"goodbye_travel_ticks"`
	BlockedDirTicks    int64   `yaml:"blocked_dir_ticks"`
	DefaultDirection   string  `yaml:"default_direction"`

	// Portal travel is the one probabilistic decision.
	PortalTravelChance          float64 `yaml:"portal_travel_chance"`
	PortalTravelChanceExploring float64 `yaml:"portal_travel_chance_exploring"`

	// History and derived signals.
	HistoryCapacity     int `yaml:"history_capacity"`
	SignalWindow        int `yaml:"signal_window"`
	FailedMoveThreshold int `yaml:"failed_move_threshold"`
	StuckMinRepeats     int `yaml:"stuck_min_repeats"`
	StuckMaxPositions   int `yaml:"stuck_max_positions"`

	// Memory bounds and recall bias.
	PeerCacheSize         int `yaml:"peer_cache_size"`
	SentMessagesPerPeer   int `yaml:"sent_messages_per_peer"`
	RecallRecentSummaries int `yaml:"recall_recent_summaries"`
	RecallRandomSummaries int `yaml:"recall_random_summaries"`

	// Generated text limits.
	MessageMaxChars int `yaml:"message_max_chars"`
	MaxSentences    int `yaml:"max_sentences"`

	// Loop pacing, in seconds.
	PollIntervalSec    float64 `yaml:"poll_interval_sec"`
	ErrorBackoffSec    float64 `yaml:"error_backoff_sec"`
	RequestTimeoutSec  float64 `yaml:"request_timeout_sec"`
	GenerateTimeoutSec float64 `yaml:"generate_timeout_sec"`
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (t Tuning) PollInterval() time.Duration    { return secs(t.PollIntervalSec) }
func (t Tuning) ErrorBackoff() time.Duration    { return secs(t.ErrorBackoffSec) }
func (t Tuning) RequestTimeout() time.Duration  { return secs(t.RequestTimeoutSec) }
func (t Tuning) GenerateTimeout() time.Duration { return secs(t.GenerateTimeoutSec) }

func Default() Tuning {
	return Tuning{
		VitalMax:            100,
		UrgentEnergyBelow:   30,
		UrgentHungerBelow:   25,
		ModerateEnergyBelow: 40,
		ModerateHungerBelow: 35,
		SeekFoodBelowHunger: 35,
		SeekRestBelowEnergy: 40,

		InitiateWaitTicks:     dialogue.InitiateWaitTicks,
		ReplyTimeoutTicks:     dialogue.ReplyTimeoutTicks,
		PeerCooldownTicks:     dialogue.PeerCooldownTicks,
		UrgentMinExchanges:    dialogue.UrgentMinExchanges,
		ModerateMinExchanges:  dialogue.ModerateMinExchanges,
		MaxExchanges:          dialogue.MaxExchanges,
		NaturalCloseExchanges: dialogue.NaturalCloseExchanges,
		SummaryMinExchanges:   dialogue.SummaryMinExchanges,

		InteractRange:      1.5,
		GoodbyeTravelTicks: 10,
		BlockedDirTicks:    5,
		DefaultDirection:   "east",

		PortalTravelChance:          0.15,
		PortalTravelChanceExploring: 0.35,

		HistoryCapacity:     30,
		SignalWindow:        10,
		FailedMoveThreshold: 3,
		StuckMinRepeats:     5,
		StuckMaxPositions:   2,

		PeerCacheSize:         64,
		SentMessagesPerPeer:   20,
		RecallRecentSummaries: 3,
		RecallRandomSummaries: 2,

		MessageMaxChars: 300,
		MaxSentences:    2,

		PollIntervalSec:    2,
		ErrorBackoffSec:    10,
		RequestTimeoutSec:  10,
		GenerateTimeoutSec: 120,
	}
}

// Load reads a YAML tuning file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.VitalMax <= 0 {
		return fmt.Errorf("vital_max must be positive, got %d", t.VitalMax)
	}
	if t.HistoryCapacity <= 0 || t.SignalWindow <= 0 {
		return fmt.Errorf("history_capacity and signal_window must be positive")
	}
	if t.SignalWindow > t.HistoryCapacity {
		return fmt.Errorf("signal_window %d exceeds history_capacity %d", t.SignalWindow, t.HistoryCapacity)
	}
	if t.PortalTravelChance < 0 || t.PortalTravelChance > 1 ||
		t.PortalTravelChanceExploring < 0 || t.PortalTravelChanceExploring > 1 {
		return fmt.Errorf("portal travel chances must be within [0,1]")
	}
	if t.PollIntervalSec <= 0 {
		return fmt.Errorf("poll_interval_sec must be positive")
	}
	return nil
}
