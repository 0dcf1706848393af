package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Snapshot SnapshotConfig
	DB       DBConfig
	Engine   EngineConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SnapshotConfig persistencia del estado de la bodega.
// Backend "file" guarda el snapshot JSON en Path; "postgres" lo guarda en una
// tabla usando la conexión de DBConfig.
type SnapshotConfig struct {
	Backend string // file | postgres
	Path    string // ruta del snapshot cuando Backend == file
	Name    string // nombre lógico del snapshot (clave en la tabla postgres)
}

// DBConfig configuración de PostgreSQL para el backend de snapshots.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// DSN devuelve el connection string a usar: DatabaseURL si está definido,
// si no el construido campo a campo.
func (c DBConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// EngineConfig parámetros del motor de inventario.
type EngineConfig struct {
	CollatorLocale string // "" = orden ordinal determinista; ej. "pt" para colación portuguesa
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SNAPSHOT_BACKEND, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "bodega-core"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Snapshot: SnapshotConfig{
			Backend: getString(v, "SNAPSHOT_BACKEND", "file"),
			Path:    getString(v, "SNAPSHOT_PATH", "bodega.json"),
			Name:    getString(v, "SNAPSHOT_NAME", "default"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "bodega"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Engine: EngineConfig{
			CollatorLocale: getString(v, "COLLATOR_LOCALE", ""),
		},
	}

	if cfg.Snapshot.Backend != "file" && cfg.Snapshot.Backend != "postgres" {
		return nil, fmt.Errorf("SNAPSHOT_BACKEND inválido: %q (se espera file o postgres)", cfg.Snapshot.Backend)
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
