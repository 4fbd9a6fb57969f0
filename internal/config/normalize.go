package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.ReviewDir, err = expandPath(c.Paths.ReviewDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Glossary.Dir, err = expandPath(c.Glossary.Dir); err != nil {
		return err
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return err
	}

	// Environment overrides trump file values for credentials so keys can
	// stay out of the config file.
	if key := strings.TrimSpace(envValue("SUBTEXT_LLM_API_KEY")); key != "" {
		c.LLM.APIKey = key
	}

	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	c.YtDlp.Binary = strings.TrimSpace(c.YtDlp.Binary)
	c.HTTP.UserAgent = strings.TrimSpace(c.HTTP.UserAgent)
	return nil
}
