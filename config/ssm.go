package config

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// ParameterStore is the subset of the SSM client used to read secrets.
type ParameterStore interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// Load reads envFiles into the process environment (missing files are
// skipped) and returns the environment map, overlaid with every parameter
// found under SSM_PARAMETER_PATH when that variable is set. Explicit
// environment values win over parameters so local overrides keep working.
func Load(ctx context.Context, envFiles ...string) (map[string]string, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			log.Debug().Str("file", file).Msg("No env file, using process environment")
		}
	}

	c := New()
	parameterPath := GetString(c, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return c, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := Overlay(ctx, c, ssm.NewFromConfig(awsCfg), parameterPath); err != nil {
		return nil, err
	}
	return c, nil
}

// Overlay copies decrypted parameters under parameterPath into c. The key is
// the last path segment upper-cased with dashes turned into underscores:
// /catalog/prod/jwt-secret becomes JWT_SECRET.
func Overlay(ctx context.Context, c map[string]string, store ParameterStore, parameterPath string) error {
	var nextToken *string
	loaded := 0
	for {
		out, err := store.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(parameterPath),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return err
		}

		for _, p := range out.Parameters {
			key := parameterKey(aws.ToString(p.Name))
			if key == "" {
				continue
			}
			if _, set := c[key]; set && c[key] != "" {
				continue
			}
			c[key] = aws.ToString(p.Value)
			loaded++
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	log.Info().Str("path", parameterPath).Int("parameters", loaded).Msg("Loaded configuration from SSM")
	return nil
}

func parameterKey(name string) string {
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(base, "-", "_"))
}
