package i18n

// Translator retrieves localized messages for issue codes.
// data provides optional metadata to embed in the message (for example,
// "index" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalog = map[string]map[string]string{
	"en": {
		"token_budget_exceeded":         "token budget exceeded",
		"invalid_character":             "invalid character",
		"unexpected_end":                "unexpected end of input",
		"null_or_invalid_argument":      "null or invalid argument",
		"out_of_memory":                 "allocation size out of range",
		"max_depth_exceeded":            "max depth exceeded",
		"duplicate_key":                 "duplicate key",
		"meta_not_object":               "meta must be an object with id, algo and params",
		"meta_id_not_string":            "meta.id must be a string",
		"meta_algo_not_string":          "meta.algo must be a string",
		"meta_unknown_field":            "unknown field in meta",
		"domains_not_array":             "domains must be an array",
		"domain_not_object":             "domain must be an object with a single field",
		"domain_unknown_field":          "unknown domain type",
		"domain_values_not_array":       "domain values must be an array",
		"domain_value_not_int":          "domain value must be an integer",
		"vars_not_array":                "vars must be an array",
		"var_not_int":                   "var must be an integer domain index",
		"constraint_defs_not_array":     "constraintDefs must be an array",
		"constraint_def_not_object":     "constraint definition must be an object",
		"constraint_def_unknown_type":   "unknown constraint definition type",
		"no_goods_not_array":            "noGoods must be an array",
		"no_goods_not_tuple":            "noGoods entries must be tuples",
		"no_goods_inconsistent_arity":   "noGoods tuples must share one arity",
		"no_goods_value_not_int":        "noGoods value must be an integer",
		"constraints_not_array":         "constraints must be an array",
		"constraint_not_object":         "constraint must be an object",
		"constraint_id_not_int":         "constraint id must be an integer",
		"constraint_vars_not_array":     "constraint vars must be an array",
		"constraint_var_not_int":        "constraint var must be an integer",
		"constraint_unknown_field":      "unknown field in constraint",
		"top_not_object":                "document must be an object",
		"top_bad_field_count":           "document must have exactly 5 fields",
		"top_unknown_field":             "unknown top-level field",
		"tuple_item_type_mismatch":      "tuple item type mismatch",
		"not_an_array":                  "not an array",
		"domains_size_invalid":          "invalid domains size",
		"domains_type_invalid":          "unsupported domain type",
		"vars_arity_invalid":            "vars must be a flat list",
		"vars_size_invalid":             "invalid vars size",
		"var_range_invalid":             "var refers to a missing domain",
		"constraint_defs_size_invalid":  "invalid constraintDefs size",
		"constraint_def_type_invalid":   "unsupported constraint definition type",
		"constraints_size_invalid":      "invalid constraints size",
		"constraint_id_range_invalid":   "constraint refers to a missing definition",
		"constraint_vars_arity_invalid": "constraint vars must be a flat list",
		"constraint_vars_size_invalid":  "constraint vars do not match the definition arity",
		"constraint_var_range_invalid":  "constraint refers to a missing var",
		"solution_arity_invalid":        "solution must be a flat list",
		"solution_size_mismatch":        "solution length differs from vars",
	},
	"ja": {
		"token_budget_exceeded":         "トークン数の上限を超えました",
		"invalid_character":             "不正な文字です",
		"unexpected_end":                "入力が途中で終わっています",
		"null_or_invalid_argument":      "引数が不正です",
		"out_of_memory":                 "確保サイズが範囲外です",
		"max_depth_exceeded":            "最大深さを超えました",
		"duplicate_key":                 "キーが重複しています",
		"meta_not_object":               "meta は id, algo, params を持つオブジェクトでなければなりません",
		"meta_id_not_string":            "meta.id は文字列でなければなりません",
		"meta_algo_not_string":          "meta.algo は文字列でなければなりません",
		"meta_unknown_field":            "meta に未知のフィールドがあります",
		"domains_not_array":             "domains は配列でなければなりません",
		"domain_not_object":             "ドメインはフィールドを1つだけ持つオブジェクトでなければなりません",
		"domain_unknown_field":          "未知のドメイン種別です",
		"domain_values_not_array":       "ドメインの values は配列でなければなりません",
		"domain_value_not_int":          "ドメインの値は整数でなければなりません",
		"vars_not_array":                "vars は配列でなければなりません",
		"var_not_int":                   "変数はドメインの整数インデックスでなければなりません",
		"constraint_defs_not_array":     "constraintDefs は配列でなければなりません",
		"constraint_def_not_object":     "制約定義はオブジェクトでなければなりません",
		"constraint_def_unknown_type":   "未知の制約定義種別です",
		"no_goods_not_array":            "noGoods は配列でなければなりません",
		"no_goods_not_tuple":            "noGoods の要素はタプルでなければなりません",
		"no_goods_inconsistent_arity":   "noGoods のタプルの長さが揃っていません",
		"no_goods_value_not_int":        "noGoods の値は整数でなければなりません",
		"constraints_not_array":         "constraints は配列でなければなりません",
		"constraint_not_object":         "制約はオブジェクトでなければなりません",
		"constraint_id_not_int":         "制約の id は整数でなければなりません",
		"constraint_vars_not_array":     "制約の vars は配列でなければなりません",
		"constraint_var_not_int":        "制約の変数は整数でなければなりません",
		"constraint_unknown_field":      "制約に未知のフィールドがあります",
		"top_not_object":                "ドキュメントはオブジェクトでなければなりません",
		"top_bad_field_count":           "ドキュメントのフィールドはちょうど5つでなければなりません",
		"top_unknown_field":             "未知のトップレベルフィールドです",
		"tuple_item_type_mismatch":      "タプル要素の型が一致しません",
		"not_an_array":                  "配列ではありません",
		"domains_size_invalid":          "domains のサイズが不正です",
		"domains_type_invalid":          "未対応のドメイン種別です",
		"vars_arity_invalid":            "vars はフラットなリストでなければなりません",
		"vars_size_invalid":             "vars のサイズが不正です",
		"var_range_invalid":             "変数が存在しないドメインを参照しています",
		"constraint_defs_size_invalid":  "constraintDefs のサイズが不正です",
		"constraint_def_type_invalid":   "未対応の制約定義種別です",
		"constraints_size_invalid":      "constraints のサイズが不正です",
		"constraint_id_range_invalid":   "制約が存在しない定義を参照しています",
		"constraint_vars_arity_invalid": "制約の vars はフラットなリストでなければなりません",
		"constraint_vars_size_invalid":  "制約の変数の数が定義のアリティと一致しません",
		"constraint_var_range_invalid":  "制約が存在しない変数を参照しています",
		"solution_arity_invalid":        "解はフラットなリストでなければなりません",
		"solution_size_mismatch":        "解の長さが vars と一致しません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := catalog[t.lang][code]; ok {
		return msg
	}
	if msg, ok := catalog["en"][code]; ok {
		return msg
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
