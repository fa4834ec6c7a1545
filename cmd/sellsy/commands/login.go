package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
)

// prompter reads answers from in, echoing prompts to out. Secrets are read
// without echo when in is a terminal.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, reader: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(label string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", label)

	line, err := p.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	return strings.TrimSpace(line), nil
}

func (p *prompter) askSecret(label string) (string, error) {
	file, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return p.ask(label)
	}

	_, _ = fmt.Fprintf(p.out, "%s: ", label)

	secret, err := term.ReadPassword(int(file.Fd()))

	_, _ = fmt.Fprintln(p.out)

	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	return strings.TrimSpace(string(secret)), nil
}

// promptCredentials asks for every credential missing from config.
func promptCredentials(config *Config, p *prompter) error {
	fields := []struct {
		label  string
		key    string
		target *string
		secret bool
	}{
		{"Consumer key", keyConsumerKey, &config.ConsumerKey, false},
		{"Consumer secret", keyConsumerSecret, &config.ConsumerSecret, true},
		{"Access token", keyAccessToken, &config.AccessToken, false},
		{"Access token secret", keyAccessTokenSecret, &config.AccessTokenSecret, true},
	}

	for _, field := range fields {
		if *field.target != "" {
			continue
		}

		ask := p.ask
		if field.secret {
			ask = p.askSecret
		}

		value, err := ask(field.label)
		if err != nil {
			return err
		}

		if value == "" {
			return fmt.Errorf("%w: %s", constants.ErrMissingCredential, field.key)
		}

		*field.target = value
	}

	return nil
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		consumerKey string
		accessToken string
		verify      bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store API credentials",
		Long: `Store the OAuth consumer and access token pairs in the configuration file.
Missing values are prompted for; secrets are read without echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if consumerKey != "" {
				config.ConsumerKey = consumerKey
			}

			if accessToken != "" {
				config.AccessToken = accessToken
			}

			err := promptCredentials(config, newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			if verify {
				err = verifyCredentials(cmd, config)
				if err != nil {
					return err
				}
			}

			configFile, err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Saved credentials to", configFile, "")
		},
	}

	cmd.Flags().StringVar(&consumerKey, "consumer-key", "", "OAuth consumer key")
	cmd.Flags().StringVar(&accessToken, "access-token", "", "OAuth access token")
	cmd.Flags().BoolVar(&verify, "verify", false, "call Infos.getInfos before saving the credentials")

	return cmd
}

func verifyCredentials(cmd *cobra.Command, config *Config) error {
	client, closeClient, err := createClient(cmd, config)
	if err != nil {
		return err
	}

	_, err = client.GetInfos(cmd.Context())
	if err != nil {
		err = fmt.Errorf("credentials rejected: %w", err)
	}

	return errors.Join(err, closeClient())
}
