package env_utils

type EnvMode string

const (
	EnvModeDevelopment EnvMode = "development"
	EnvModeProduction  EnvMode = "production"
)

func (m EnvMode) IsValid() bool {
	switch m {
	case EnvModeDevelopment, EnvModeProduction:
		return true
	default:
		return false
	}
}
