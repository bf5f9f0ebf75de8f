package config

// Environment variable names shared between Load, the mains, and tests.
const (
	EnvPrefix = "FONDITA"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EnvAppEnv   = "FONDITA_APP_ENV"
	EnvPort     = "FONDITA_APP_PORT"
	EnvLogLevel = "FONDITA_LOG_LEVEL"

	EnvDBDSN    = "FONDITA_DB_DSN"
	EnvDBDriver = "FONDITA_DB_DRIVER"
	EnvDBHost   = "FONDITA_DB_HOST"
	EnvDBUser   = "FONDITA_DB_USER"
	EnvDBName   = "FONDITA_DB_NAME"

	EnvRedisURL = "FONDITA_REDIS_URL"

	EnvJWTSecret      = "FONDITA_JWT_SECRET"
	EnvJWTAdminSecret = "FONDITA_JWT_SECRET_ADMIN"
	EnvJWTIssuer      = "FONDITA_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
