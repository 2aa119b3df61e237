package world

// Kind names a component table. The set is closed: Set rejects any kind not
// declared here, so schema drift is a compile-time or typed-error concern
// rather than a silent table creation.
type Kind int

const (
	KindInvalid Kind = iota
	KindPosition
	KindHealth
	KindSpeed
	KindSkills
	KindAttributes
	KindPersonality
	KindInventory
	KindDoors
	KindEnvironment
	KindTag
	KindAIControlled
	KindTurnState
	KindExaminationHistory
	KindSearchHistory
	KindMissionData
	KindMissionObjectives
	KindMissionConditions

	kindCount // sentinel, keep last
)

var kindNames = map[Kind]string{
	KindPosition:           "position",
	KindHealth:             "health",
	KindSpeed:              "speed",
	KindSkills:             "skills",
	KindAttributes:         "attributes",
	KindPersonality:        "personality",
	KindInventory:          "inventory",
	KindDoors:              "doors",
	KindEnvironment:        "environment",
	KindTag:                "tag",
	KindAIControlled:       "ai_controlled",
	KindTurnState:          "turn_state",
	KindExaminationHistory: "examination_history",
	KindSearchHistory:      "search_history",
	KindMissionData:        "mission_data",
	KindMissionObjectives:  "mission_objectives",
	KindMissionConditions:  "mission_conditions",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "invalid"
}

func (k Kind) valid() bool {
	return k > KindInvalid && k < kindCount
}

// Component is the closed union of component records. Each record reports
// the table it belongs to.
type Component interface {
	Kind() Kind
}

// Position places an entity in a room. For room entities it points at the
// room itself.
type Position struct {
	Room EntityID `json:"room"`
}

func (*Position) Kind() Kind { return KindPosition }

type Health struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

func (*Health) Kind() Kind { return KindHealth }

// Speed is the number of timer units a character recovers per tick.
type Speed struct {
	Value int `json:"value"`
}

func (*Speed) Kind() Kind { return KindSpeed }

// Skills maps skill names (comtech, mobility, observation, ...) to levels.
type Skills struct {
	Values map[string]int `json:"values"`
}

func (*Skills) Kind() Kind { return KindSkills }

// Level returns the skill level, 0 when untrained.
func (s *Skills) Level(name string) int {
	if s == nil || s.Values == nil {
		return 0
	}
	return s.Values[name]
}

type Attributes struct {
	Might   int `json:"might"`
	Agility int `json:"agility"`
	Wits    int `json:"wits"`
	Empathy int `json:"empathy"`
}

func (*Attributes) Kind() Kind { return KindAttributes }

// Personality carries the flavor text a decision source needs to role-play
// the character.
type Personality struct {
	Agenda string   `json:"agenda"`
	Traits []string `json:"traits,omitempty"`
}

func (*Personality) Kind() Kind { return KindPersonality }

type Inventory struct {
	Items []string `json:"items"`
}

func (*Inventory) Kind() Kind { return KindInventory }

// DoorConnection is one outbound connection from a room. Connections are
// one-way; a reciprocal connection is declared on the far room if desired.
type DoorConnection struct {
	Target      EntityID `json:"target"`
	Cost        int      `json:"cost"`
	Description string   `json:"description,omitempty"`
}

type Doors struct {
	Connections []DoorConnection `json:"connections"`
}

func (*Doors) Kind() Kind { return KindDoors }

type Environment struct {
	Description string `json:"description"`
	Atmosphere  string `json:"atmosphere,omitempty"`
	Hazardous   bool   `json:"hazardous,omitempty"`
	Dark        bool   `json:"dark,omitempty"`
}

func (*Environment) Kind() Kind { return KindEnvironment }

type Tag struct {
	Label string `json:"label"`
}

func (*Tag) Kind() Kind { return KindTag }

// AIControlled marks a character whose decisions come from the AI source
// instead of the human commander.
type AIControlled struct{}

func (*AIControlled) Kind() Kind { return KindAIControlled }

// TurnState is the scheduler's per-character record. Timer counts down by
// Speed each tick; Ready holds iff Timer <= 0.
type TurnState struct {
	Timer  int  `json:"timer"`
	Speed  int  `json:"speed"`
	Ready  bool `json:"ready"`
	Active bool `json:"active"`
}

func (*TurnState) Kind() Kind { return KindTurnState }

type ExaminationEntry struct {
	By       EntityID `json:"by"`
	Tick     int64    `json:"tick"`
	Thorough bool     `json:"thorough,omitempty"`
}

type ExaminationHistory struct {
	Entries []ExaminationEntry `json:"entries"`
}

func (*ExaminationHistory) Kind() Kind { return KindExaminationHistory }

type SearchEntry struct {
	By   EntityID `json:"by"`
	Tick int64    `json:"tick"`
}

type SearchHistory struct {
	Entries []SearchEntry `json:"entries"`
}

func (*SearchHistory) Kind() Kind { return KindSearchHistory }

// MissionStatus is monotonic: once a mission leaves StatusActive it never
// returns.
type MissionStatus string

const (
	StatusActive  MissionStatus = "ACTIVE"
	StatusSuccess MissionStatus = "SUCCESS"
	StatusFailure MissionStatus = "FAILURE"
)

type MissionData struct {
	Status       MissionStatus `json:"status"`
	ActionsTaken int           `json:"actions_taken"`
	CommTraffic  int           `json:"comm_traffic"`
	EndedTick    int64         `json:"ended_tick,omitempty"`
}

func (*MissionData) Kind() Kind { return KindMissionData }

// ObjectiveType selects the predicate evaluated against world state.
type ObjectiveType string

const (
	ObjectiveReachRoom     ObjectiveType = "reach_room"
	ObjectiveExamineTarget ObjectiveType = "examine_target"
	ObjectiveSearchRoom    ObjectiveType = "search_room"
)

type Objective struct {
	ID            string        `json:"id"`
	Description   string        `json:"description"`
	Type          ObjectiveType `json:"type"`
	Target        EntityID      `json:"target"`
	Completed     bool          `json:"completed"`
	CompletedTick int64         `json:"completed_tick,omitempty"`
}

type MissionObjectives struct {
	Primary   []Objective `json:"primary"`
	Secondary []Objective `json:"secondary,omitempty"`
}

func (*MissionObjectives) Kind() Kind { return KindMissionObjectives }

type ConditionType string

const (
	ConditionCharacterDeath ConditionType = "character_death"
	ConditionTimeLimit      ConditionType = "time_limit"
)

type FailureCondition struct {
	ID            string        `json:"id"`
	Description   string        `json:"description"`
	Type          ConditionType `json:"type"`
	MaxTick       int64         `json:"max_tick,omitempty"`
	Triggered     bool          `json:"triggered"`
	TriggeredTick int64         `json:"triggered_tick,omitempty"`
}

type MissionConditions struct {
	Conditions []FailureCondition `json:"conditions"`
}

func (*MissionConditions) Kind() Kind { return KindMissionConditions }
