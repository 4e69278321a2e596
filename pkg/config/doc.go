/*
Package config resolves replacement options and loads rules files for replacerc.

	            +-------------+
	            |   Config    |
	            |   (Rules)   |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+---+ +---+--+    +---+--+  +---+--+
	| YAML | | JSON |    | HCL  |  | TOML |
	+------+ +------+    +------+  +------+

🎯 Purpose:
  - Turns the untyped options a host hands to the loader into a validated TransformConfig
  - Loads rules files that pair include/exclude globs with those options
  - Reports every bad option as a *ConfigurationError naming the option

🔄 Flow:
 1. Reads the rules file and picks a parser by extension
 2. Decodes strictly, unknown fields are errors in every format
 3. Validates globs and resolves each rule's options up front
 4. The loader resolves the same options again for each file it transforms

🔍 Example:

	rules:
	  - name: api-host
	    include: ["src/**"]
	    exclude: ["src/vendor/**"]
	    options:
	      search: { regex: 'https://staging\.example\.com', flags: g }
	      replace: https://example.com

	cfg, err := config.Load(ctx, ".replacerc.yaml")
	if err != nil {
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			fmt.Printf("bad option %s: %v\n", cerr.Option, cerr.Err)
		}
		return err
	}
	rule, ok := cfg.Match("src/client.js")
*/
package config
