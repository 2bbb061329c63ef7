package domain

// KeyPrefix namespaces all Redis keys written by resumatch.
const KeyPrefix = "resumatch:"

// ResumeKeyPrefix is the key prefix for stored resume hashes.
const ResumeKeyPrefix = KeyPrefix + "resumes:"

// ResumeIndexName is the FT index over resume hashes.
const ResumeIndexName = KeyPrefix + "resumes:idx"

// VectorConfig holds embedding vector parameters.
type VectorConfig struct {
	Dimensions int
}

// DefaultVectorConfig returns defaults matching all-MiniLM-L6-v2 class models.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{Dimensions: 384}
}
