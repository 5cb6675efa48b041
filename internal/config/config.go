// Package config 提供 sourcelines 的配置装载能力。
// 配置优先级：命令行参数 > 环境变量（SOURCELINES_*）> 配置文件 > 内置默认值。
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// DefaultExcludes 是默认排除的文件/目录模式。
// 用户通过 --include 命中的条目会重新纳入统计。
var DefaultExcludes = []string{
	"*~",
	"~*",
	"*$",
	"$*",
	".git",
	".svn",
	"*.bak",
	"*.lock",
	"*.log",
	"*.tmp",
	"_build",
	"build",
	"builddir",
	"node_modules",
	"target",
	"vendor",
}

// Config 表示配置文件可持久化的默认项。
type Config struct {
	Workers        int      `mapstructure:"workers"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks"`
	Color          bool     `mapstructure:"color"`
	// Exclude 追加在 DefaultExcludes 之后，不替换默认列表。
	Exclude []string `mapstructure:"exclude"`
	// Columns 指定默认展示列（actual-loc/raw-loc/words/chars/bytes 等）。
	Columns []string `mapstructure:"columns"`
}

// Load 从工作目录或用户主目录读取 .sourcelines.yaml。
// 配置文件不存在不是错误，返回零值配置即可。
func Load() (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName(".sourcelines")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	v.SetEnvPrefix("SOURCELINES")
	v.AutomaticEnv()

	// AutomaticEnv 只能覆盖 viper 已知的键；配置文件缺失（或键未出现）时
	// Unmarshal 看不到环境变量，必须逐键显式绑定。
	for _, key := range []string{"workers", "follow_symlinks", "color", "exclude", "columns"} {
		if err := v.BindEnv(key); err != nil {
			return cfg, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// ExcludePatterns 返回默认排除项加配置文件追加项的完整列表。
func (c Config) ExcludePatterns() []string {
	patterns := append([]string(nil), DefaultExcludes...)
	return append(patterns, c.Exclude...)
}
