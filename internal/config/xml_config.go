// Package config provides XML-based configuration management for the
// BOM extractor server.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"BOMExtractor"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Storage configuration
	Storage StorageConfig `xml:"Storage"`

	// Extraction configuration
	Extraction ExtractionConfig `xml:"Extraction"`

	// Processing configuration
	Processing ProcessingConfig `xml:"Processing"`

	// Security configuration
	Security SecurityConfig `xml:"Security"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	DataDirectory    string `xml:"DataDirectory"`
	UploadsDirectory string `xml:"UploadsDirectory"`
	OutputsDirectory string `xml:"OutputsDirectory"`
	ResultsDirectory string `xml:"ResultsDirectory"`
}

// ExtractionConfig contains LLM extraction settings
type ExtractionConfig struct {
	Model          string  `xml:"Model"`
	BaseURL        string  `xml:"BaseURL"`
	Temperature    float32 `xml:"Temperature"`
	TimeoutSeconds int     `xml:"TimeoutSeconds"`
	SchemaFile     string  `xml:"SchemaFile"`
}

// ProcessingConfig contains result retention and response tuning
type ProcessingConfig struct {
	ResultTTLMinutes       int  `xml:"ResultTTLMinutes"`
	CleanupIntervalMinutes int  `xml:"CleanupIntervalMinutes"`
	EnableCompression      bool `xml:"EnableCompression"`
	CompressionLevel       int  `xml:"CompressionLevel"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	AllowedFileTypes string `xml:"AllowedFileTypes"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         3000,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  180,
			WriteTimeout: 180,
			IdleTimeout:  120,
			BodyLimit:    "16M",
		},
		Storage: StorageConfig{
			DataDirectory:    "./data",
			UploadsDirectory: "./data/uploads",
			OutputsDirectory: "./data/outputs",
			ResultsDirectory: "./data/results",
		},
		Extraction: ExtractionConfig{
			Model:          "gpt-4o-mini",
			BaseURL:        "https://api.openai.com/v1",
			Temperature:    0,
			TimeoutSeconds: 120,
			SchemaFile:     "",
		},
		Processing: ProcessingConfig{
			ResultTTLMinutes:       30,
			CleanupIntervalMinutes: 5,
			EnableCompression:      true,
			CompressionLevel:       5,
		},
		Security: SecurityConfig{
			AllowedFileTypes: ".pdf",
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &AppConfig{}
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- BOM Extractor Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
	}

	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		c.Extraction.BaseURL = baseURL
	}

	if model := os.Getenv("EXTRACTION_MODEL"); model != "" {
		c.Extraction.Model = model
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if !filepath.IsAbs(c.Storage.UploadsDirectory) {
		c.Storage.UploadsDirectory = filepath.Join(configDir, c.Storage.UploadsDirectory)
	}
	if !filepath.IsAbs(c.Storage.OutputsDirectory) {
		c.Storage.OutputsDirectory = filepath.Join(configDir, c.Storage.OutputsDirectory)
	}
	if !filepath.IsAbs(c.Storage.ResultsDirectory) {
		c.Storage.ResultsDirectory = filepath.Join(configDir, c.Storage.ResultsDirectory)
	}
	if c.Extraction.SchemaFile != "" && !filepath.IsAbs(c.Extraction.SchemaFile) {
		c.Extraction.SchemaFile = filepath.Join(configDir, c.Extraction.SchemaFile)
	}
}

// GetUploadDir returns the absolute uploads directory path
func (c *AppConfig) GetUploadDir() string {
	return c.Storage.UploadsDirectory
}

// GetOutputDir returns the absolute outputs directory path
func (c *AppConfig) GetOutputDir() string {
	return c.Storage.OutputsDirectory
}

// GetResultsDir returns the absolute results directory path
func (c *AppConfig) GetResultsDir() string {
	return c.Storage.ResultsDirectory
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDirectory,
		c.Storage.UploadsDirectory,
		c.Storage.OutputsDirectory,
		c.Storage.ResultsDirectory,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
