package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "CHATSKINS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CHATSKINS_DB_DSN"
	EnvDBHost = "CHATSKINS_DB_HOST"
	EnvDBUser = "CHATSKINS_DB_USER"
	EnvDBName = "CHATSKINS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
