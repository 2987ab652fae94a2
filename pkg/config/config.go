package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env vars e opcionalmente arquivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	NFCe  NFCeConfig
	Redis RedisConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// NFCeConfig configuração da emissão de NFC-e.
// O core só grava o ciclo de status; a autorização em si fica com o emissor externo.
type NFCeConfig struct {
	Ambiente   int    // 1 = produção, 2 = homologação
	UF         string // código IBGE da UF do emitente (ex.: "35" para SP)
	Serie      string // série do documento (ex.: "001")
	EmissorURL string // endpoint do serviço emissor; vazio = emissão simulada
	ConsultaQR string // URL base de consulta do QR Code da SEFAZ
}

// RedisConfig cache de consulta de produtos por código (opcional).
type RedisConfig struct {
	Addr     string // vazio = cache desativado
	Password string
	DB       int
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devolve o DSN a usar: DATABASE_URL se definido, senão o construído com DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve o connection string do PostgreSQL com URL encoding para caracteres especiais.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST, JWT_SECRET, NFCE_AMBIENTE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env ou config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "pdv-pro"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pdv_pro"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "pdv-pro"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		NFCe: NFCeConfig{
			Ambiente:   getInt(v, "NFCE_AMBIENTE", 2),
			UF:         getString(v, "NFCE_UF", "35"),
			Serie:      getString(v, "NFCE_SERIE", "001"),
			EmissorURL: getString(v, "NFCE_EMISSOR_URL", ""),
			ConsultaQR: getString(v, "NFCE_CONSULTA_QR", "https://www.fazenda.sp.gov.br/nfce/consulta"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
