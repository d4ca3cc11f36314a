package syntax

// Node kinds of the tree-sitter C# grammar that declare named types or
// members. Rules register for these by value.
const (
	KindClassDeclaration              = "class_declaration"
	KindInterfaceDeclaration          = "interface_declaration"
	KindEnumDeclaration               = "enum_declaration"
	KindStructDeclaration             = "struct_declaration"
	KindDelegateDeclaration           = "delegate_declaration"
	KindEventDeclaration              = "event_declaration"
	KindEventFieldDeclaration         = "event_field_declaration"
	KindFieldDeclaration              = "field_declaration"
	KindMethodDeclaration             = "method_declaration"
	KindPropertyDeclaration           = "property_declaration"
	KindOperatorDeclaration           = "operator_declaration"
	KindConversionOperatorDeclaration = "conversion_operator_declaration"
	KindIndexerDeclaration            = "indexer_declaration"
	KindConstructorDeclaration        = "constructor_declaration"
)

// Auxiliary kinds used when navigating around declarations.
const (
	KindModifier                   = "modifier"
	KindVariableDeclaration        = "variable_declaration"
	KindVariableDeclarator         = "variable_declarator"
	KindDeclarationList            = "declaration_list"
	KindExplicitInterfaceSpecifier = "explicit_interface_specifier"
	KindThis                       = "this"
)
