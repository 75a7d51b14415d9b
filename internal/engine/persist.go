package engine

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/logger"
	"github.com/julianstephens/arise/internal/models"
)

// Writes are fire-and-forget: a failed write is logged and otherwise ignored.

func (e *Engine) read(key string) (string, bool) {
	v, ok, err := e.kv.Get(key)
	if err != nil {
		logger.Warn("Failed to read persisted value", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (e *Engine) write(key, value string) {
	if err := e.kv.Set(key, value); err != nil {
		logger.Warn("Failed to persist value", "key", key, "error", err)
	}
}

func (e *Engine) readNumber(key string) (float64, bool) {
	raw, ok := e.read(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 {
		logger.Warn("Malformed persisted number, using default", "key", key, "value", raw)
		return 0, false
	}
	return f, true
}

func (e *Engine) readInt(key string, def int) int {
	f, ok := e.readNumber(key)
	if !ok {
		return def
	}
	return int(f)
}

func (e *Engine) writeInt(key string, v int) {
	e.write(key, strconv.Itoa(v))
}

func (e *Engine) readJSON(key string, v any) bool {
	raw, ok := e.read(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.Warn("Malformed persisted value, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (e *Engine) writeJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("Failed to encode value", "key", key, "error", err)
		return
	}
	e.write(key, string(data))
}

func (e *Engine) loadState() {
	e.daily = e.readCounters(constants.KeyDailyTimers)
	e.lifetime = e.readCounters(constants.KeyTotalTimers)
	e.credited = e.readCounters(constants.KeyCreditedTimers)
	e.lastReset = e.readResetDate()
	if raw, ok := e.read(constants.KeyLastResetDate); ok && e.lastReset != "" && raw != e.lastReset {
		// Timestamps written by older versions are stored back as plain dates.
		e.write(constants.KeyLastResetDate, e.lastReset)
	}

	if xp, ok := e.readNumber(constants.KeyXP); ok {
		e.xp = xp
	} else if lvl := e.readInt(constants.KeyLevel, 1); lvl > 1 {
		// Only a stored level survives; rebuild the minimum XP for it.
		e.xp = float64(lvl-1) * constants.LevelXPQuantum
	}
	e.level = LevelFor(e.xp)
	e.rank = RankFor(e.level)

	var quests models.DailyQuests
	if e.readJSON(constants.KeyDailyQuests, &quests) {
		e.quests = normalizeQuests(quests)
	}

	e.tokens = e.readInt(constants.KeyAriseCount, 0)
	e.currency = e.readInt(constants.KeyCurrency, constants.DefaultCurrency)
	e.slots = e.readInt(constants.KeyShadowSlots, constants.DefaultShadowSlots)
	e.shadows = e.readRoster()

	var days []models.HeatmapDay
	if e.readJSON(constants.KeyHeatmap, &days) {
		for _, d := range days {
			if d.Date == "" || d.StudyTime < 0 {
				continue
			}
			e.heatmap[d.Date] = d.StudyTime
		}
	}

	if !e.readJSON(constants.KeyTodos, &e.todos) {
		e.todos = nil
	}

	e.profile.Username = constants.DefaultUsername
	if name, ok := e.read(constants.KeyUsername); ok && strings.TrimSpace(name) != "" {
		e.profile.Username = strings.TrimSpace(name)
	}
	if pic, ok := e.read(constants.KeyProfilePicture); ok {
		e.profile.ProfilePicture = pic
	}
	var accepted bool
	if e.readJSON(constants.KeyPlayerAccepted, &accepted) {
		e.profile.PlayerAccepted = accepted
	}

	e.loadTimer()
}

func (e *Engine) readCounters(key string) models.Counters {
	var c models.Counters
	if !e.readJSON(key, &c) {
		return models.Counters{}
	}
	return c.Sub(models.Counters{})
}

// readResetDate accepts a plain date or an RFC 3339 timestamp.
func (e *Engine) readResetDate() string {
	raw, ok := e.read(constants.KeyLastResetDate)
	if !ok {
		return ""
	}
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(constants.DateFormat, raw, e.loc); err == nil {
		return t.Format(constants.DateFormat)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(e.loc).Format(constants.DateFormat)
	}
	logger.Warn("Malformed last reset date, treating as today", "value", raw)
	return ""
}

// storedShadow also reads rosters written before shadows carried an
// archetype key and per-level buffs.
type storedShadow struct {
	models.Shadow
	RawID json.RawMessage `json:"id"`
	Buff  models.Buffs    `json:"buff,omitempty"`
}

func (e *Engine) readRoster() []models.Shadow {
	var stored []storedShadow
	if !e.readJSON(constants.KeyShadows, &stored) {
		return nil
	}

	seen := make(map[string]bool)
	roster := make([]models.Shadow, 0, len(stored))
	for _, s := range stored {
		sh := s.Shadow
		// Legacy ids may be numbers or null.
		sh.ID = ""
		if raw := strings.TrimSpace(string(s.RawID)); raw != "null" {
			sh.ID = strings.Trim(raw, `"`)
		}
		if sh.ID == "" {
			sh.ID = e.newID()
		}
		if sh.Key == "" {
			if a, ok := archetypeByName(sh.Name); ok {
				sh = instantiate(a, sh.ID, sh.Obtained)
			} else {
				sh.Key = strings.ToLower(sh.Name)
				sh.BaseBuffs = s.Buff
			}
		}
		if sh.Level < 1 {
			sh.Level = 1
		}
		if sh.Level > constants.ShadowMaxLevel {
			sh.Level = constants.ShadowMaxLevel
		}
		if seen[sh.Key] {
			logger.Warn("Dropping duplicate shadow from roster", "key", sh.Key, "id", sh.ID)
			continue
		}
		seen[sh.Key] = true
		roster = append(roster, sh)
	}
	return roster
}

func (e *Engine) loadTimer() {
	var session models.TimerSession
	if !e.readJSON(constants.KeyActiveTimer, &session) || !session.Active.Valid() {
		e.timer = models.TimerSession{}
		return
	}
	if session.Elapsed < 0 {
		session.Elapsed = 0
	}
	e.timer = session
	e.catchUp()
}

func (e *Engine) saveCounters() {
	e.writeJSON(constants.KeyDailyTimers, e.daily)
	e.writeJSON(constants.KeyTotalTimers, e.lifetime)
	e.writeJSON(constants.KeyCreditedTimers, e.credited)
}

func (e *Engine) saveProgress() {
	e.write(constants.KeyXP, strconv.FormatFloat(e.xp, 'f', -1, 64))
	e.writeInt(constants.KeyLevel, e.level)
}

func (e *Engine) saveQuests() { e.writeJSON(constants.KeyDailyQuests, e.quests) }

func (e *Engine) saveWallet() {
	e.writeInt(constants.KeyAriseCount, e.tokens)
	e.writeInt(constants.KeyCurrency, e.currency)
}

func (e *Engine) saveRoster() {
	if e.shadows == nil {
		e.writeJSON(constants.KeyShadows, []models.Shadow{})
		return
	}
	e.writeJSON(constants.KeyShadows, e.shadows)
}

func (e *Engine) saveSlots() { e.writeInt(constants.KeyShadowSlots, e.slots) }

func (e *Engine) saveHeatmap() {
	e.writeJSON(constants.KeyHeatmap, e.HeatmapDays())
}

func (e *Engine) saveTodos() {
	if e.todos == nil {
		e.writeJSON(constants.KeyTodos, []models.Todo{})
		return
	}
	e.writeJSON(constants.KeyTodos, e.todos)
}

func (e *Engine) saveTimer() {
	if e.timer.Active == "" {
		if err := e.kv.Delete(constants.KeyActiveTimer); err != nil {
			logger.Warn("Failed to clear timer session", "error", err)
		}
		return
	}
	e.writeJSON(constants.KeyActiveTimer, e.timer)
}

// HeatmapDays returns every recorded day in ascending date order.
func (e *Engine) HeatmapDays() []models.HeatmapDay {
	days := make([]models.HeatmapDay, 0, len(e.heatmap))
	for d, s := range e.heatmap {
		days = append(days, models.HeatmapDay{Date: d, StudyTime: s})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
