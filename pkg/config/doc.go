/*
Package config holds the run configuration for rena and the config file loaders that feed it.

	            +-----------------+
	            |  Configuration  |
	            |   (read-only)   |
	            +--------+--------+
	                     |
	      +--------------+--------------+
	      |              |              |
	+-----+-----+  +-----+-----+  +-----+-----+
	|   YAML    |  |   HCL     |  |   JSON    |
	|  Parser   |  |  Parser   |  |  Parser   |
	+-----------+  +-----------+  +-----------+

🎯 Purpose:
- Defines Configuration, the single value every pipeline stage reads
- Validates it before any directory is touched
- Loads optional defaults from a config file

🔄 Flow:
1. Start from Default()
2. Overlay a config file with File.Apply
3. Overlay command line flags
4. Validate

📝 Precedence:
Flags win over the config file, the config file wins over Default().

🔍 Example:

	cfg := config.Default()
	f, err := config.Load(ctx, "rena.yaml")
	if err != nil {
		return err
	}
	if err := f.Apply(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			// report and exit
		}
	}
*/
package config
