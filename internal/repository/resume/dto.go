package resume

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/talentgrid/resumatch/internal/db"
	"github.com/talentgrid/resumatch/internal/domain"
	"github.com/talentgrid/resumatch/internal/domain/search/match"
)

// Hash field names. __vector is underscore-prefixed so it never collides
// with a metadata field.
const (
	fieldRole    = "role"
	fieldYears   = "years"
	fieldSkills  = "skills"
	fieldSummary = "summary"
	fieldVector  = "__vector"
)

// skillsSeparator joins skills into a single TAG value. Unit separator:
// skills legitimately contain commas, pipes and spaces.
const skillsSeparator = "\x1f"

func resumeKey(id string) string {
	return domain.ResumeKeyPrefix + id
}

func extractID(key string) string {
	return strings.TrimPrefix(key, domain.ResumeKeyPrefix)
}

func buildHashFields(rec domain.ResumeRecord, vector []float32) map[string]string {
	return map[string]string{
		fieldRole:    rec.Role,
		fieldYears:   strconv.Itoa(rec.Years),
		fieldSkills:  strings.Join(rec.Skills, skillsSeparator),
		fieldSummary: rec.Summary,
		fieldVector:  vectorToBytes(vector),
	}
}

func parseHashFields(id string, fields map[string]string) domain.ResumeRecord {
	years, _ := strconv.Atoi(fields[fieldYears])
	return domain.ResumeRecord{
		ID:      id,
		Summary: fields[fieldSummary],
		Skills:  splitSkills(fields[fieldSkills]),
		Years:   years,
		Role:    fields[fieldRole],
	}
}

func parseEntry(entry db.SearchEntry) match.Result {
	years, _ := strconv.ParseFloat(entry.Fields[fieldYears], 64)
	return match.New(
		extractID(entry.Key),
		entry.Score,
		entry.Fields[fieldRole],
		years,
		splitSkills(entry.Fields[fieldSkills]),
		entry.Fields[fieldSummary],
	)
}

func splitSkills(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, skillsSeparator)
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
