package dreamql

// grammarEBNF documents the accepted language. It is served verbatim by the
// playground's grammar view.
const grammarEBNF = `(* DreamQL *)
query      = source { "|" stage } ;
source     = ident { "." ident } ;
stage      = where | select | sort | limit ;
where      = "where" condition ;
condition  = comparison { ( "and" | "or" ) comparison } ;
comparison = operand [ compare_op operand ] ;
operand    = ident | number | string | "true" | "false" | "null" ;
compare_op = "=" | "!=" | "<>" | "<" | "<=" | ">" | ">=" ;
select     = "select" ident { "," ident } ;
sort       = "sort" sort_key { "," sort_key } ;
sort_key   = ident [ "asc" | "desc" ] ;
limit      = "limit" digit { digit } ;

ident      = ( letter | "_" ) { letter | digit | "_" } ;
number     = [ "-" ] digit { digit } [ "." digit { digit } ] ;
string     = "'" { character | "''" } "'" ;
comment    = "--" { character } newline ;
`
