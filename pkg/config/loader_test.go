package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/config"
)

type TestConfigDefault struct {
	TestString string `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_DEFAULT" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_DEFAULT" envDefault:"true"`
}

type TestConfigSuccess struct {
	TestString string `env:"TEST_STRING_SUCCESS" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_SUCCESS" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_SUCCESS" envDefault:"true"`
}

type TestConfigSingleton struct {
	TestString string `env:"TEST_STRING_SINGLETON" envDefault:"default_value"`
}

type TestConfigDifferent1 struct {
	Value string `env:"VALUE_TYPE1" envDefault:"default1"`
}

type TestConfigDifferent2 struct {
	Value string `env:"VALUE_TYPE2" envDefault:"default2"`
}

type RequiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_BOOL_SUCCESS", "false")

	var cfg TestConfigSuccess
	err := config.Load(&cfg)

	require.NoError(t, err, "Load should not return an error with valid environment variables")
	assert.Equal(t, "test_value", cfg.TestString, "TestString should match environment variable")
	assert.Equal(t, 100, cfg.TestInt, "TestInt should match environment variable")
	assert.Equal(t, false, cfg.TestBool, "TestBool should match environment variable")
}

func TestLoad_DefaultValues(t *testing.T) {
	// Clean environment variables to ensure defaults are used
	os.Unsetenv("TEST_STRING_DEFAULT")
	os.Unsetenv("TEST_INT_DEFAULT")
	os.Unsetenv("TEST_BOOL_DEFAULT")

	var cfg TestConfigDefault
	err := config.Load(&cfg)

	require.NoError(t, err, "Load should not return an error when using default values")
	assert.Equal(t, "default_value", cfg.TestString, "TestString should use default value")
	assert.Equal(t, 42, cfg.TestInt, "TestInt should use default value")
	assert.Equal(t, true, cfg.TestBool, "TestBool should use default value")
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")

	var cfg RequiredConfig
	err := config.Load(&cfg)

	require.Error(t, err, "Load should return an error when a required value is missing")
	assert.True(t, errors.Is(err, config.ErrParsingConfig), "Error should be ErrParsingConfig")
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("TEST_STRING_SINGLETON", "first_value")

	var firstConfig TestConfigSingleton
	err := config.Load(&firstConfig)
	require.NoError(t, err, "First load should not return an error")

	// Change environment variable to verify caching behavior
	t.Setenv("TEST_STRING_SINGLETON", "second_value")

	var secondConfig TestConfigSingleton
	err = config.Load(&secondConfig)
	require.NoError(t, err, "Second load should not return an error")

	// Both configs should have the same value due to singleton pattern
	assert.Equal(t, firstConfig.TestString, secondConfig.TestString,
		"Both configs should have the same value due to singleton pattern")
	assert.Equal(t, "first_value", secondConfig.TestString,
		"Second config should have the first value due to caching")
}

func TestLoad_DifferentTypes(t *testing.T) {
	t.Setenv("VALUE_TYPE1", "test_type1")
	t.Setenv("VALUE_TYPE2", "test_type2")

	var config1 TestConfigDifferent1
	err := config.Load(&config1)
	require.NoError(t, err, "Loading first config type should not error")

	var config2 TestConfigDifferent2
	err = config.Load(&config2)
	require.NoError(t, err, "Loading second config type should not error")

	assert.Equal(t, "test_type1", config1.Value, "First config should have its own value")
	assert.Equal(t, "test_type2", config2.Value, "Second config should have its own value")
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *TestConfigSuccess = nil
	err := config.Load(cfg)

	require.Error(t, err, "Load should return an error when given a nil pointer")
	assert.ErrorIs(t, err, config.ErrNilPointer, "Error should be ErrNilPointer")
}

type EnvFileConfig struct {
	CookieName string   `env:"TEST_SESSION_COOKIE_NAME"`
	SaveMode   string   `env:"TEST_SESSION_SAVE_MODE"`
	Engines    []string `env:"TEST_CACHE_ENGINES" envSeparator:","`
	Quoted     string   `env:"TEST_QUOTED"`
	Empty      string   `env:"TEST_EMPTY" envDefault:""`
}

type OverrideConfig struct {
	CookieName string `env:"TEST_SESSION_COOKIE_NAME"`
	Only       string `env:"TEST_OVERRIDE_ONLY"`
}

type RetryConfig struct {
	Value string `env:"TEST_RETRY_VALUE,required"`
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		os.Unsetenv(k)
		t.Cleanup(func() { os.Unsetenv(k) })
	}
}

func TestLoadEnv_CustomPath(t *testing.T) {
	unsetEnv(t, "TEST_SESSION_COOKIE_NAME", "TEST_SESSION_SAVE_MODE", "TEST_CACHE_ENGINES", "TEST_QUOTED", "TEST_EMPTY")
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))

	var cfg EnvFileConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "custom_sess", cfg.CookieName)
	assert.Equal(t, "deferred", cfg.SaveMode)
	assert.Equal(t, []string{"memory", "redis", "postgres"}, cfg.Engines)
	assert.Equal(t, "quoted value", cfg.Quoted)
	assert.Empty(t, cfg.Empty)
}

func TestLoadEnv_FirstFileWins(t *testing.T) {
	unsetEnv(t, "TEST_SESSION_COOKIE_NAME", "TEST_SESSION_SAVE_MODE", "TEST_CACHE_ENGINES", "TEST_QUOTED", "TEST_EMPTY", "TEST_OVERRIDE_ONLY")
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.custom", "testdata/.env.override"))

	var cfg OverrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "custom_sess", cfg.CookieName, "godotenv never overrides a variable already set")
	assert.Equal(t, "from_override", cfg.Only)
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	unsetEnv(t, "TEST_SESSION_SAVE_MODE", "TEST_CACHE_ENGINES", "TEST_QUOTED", "TEST_EMPTY")
	t.Setenv("TEST_SESSION_COOKIE_NAME", "from_process")
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))
	assert.Equal(t, "from_process", os.Getenv("TEST_SESSION_COOKIE_NAME"))
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/.env.missing")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv("testdata/.env.missing") })
}

func TestLoadEnv_DefaultMissingIsFine(t *testing.T) {
	assert.NoError(t, config.LoadEnv())
}

func TestLoad_FailureIsNotCached(t *testing.T) {
	unsetEnv(t, "TEST_RETRY_VALUE")

	var cfg RetryConfig
	require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)

	t.Setenv("TEST_RETRY_VALUE", "now set")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "now set", cfg.Value)
}

func TestMustLoad(t *testing.T) {
	unsetEnv(t, "REQUIRED_VALUE")
	config.ResetCache()

	var cfg RequiredConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}
