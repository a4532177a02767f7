package schema

// TPCHTables lists the TPC-H table names in the order they are converted.
var TPCHTables = []string{
	"customer",
	"lineitem",
	"nation",
	"orders",
	"part",
	"partsupp",
	"region",
	"supplier",
}

// TPCH holds the fixed schema for every TPC-H table. Data types follow the
// datafusion TPC-H benchmark definitions.
var TPCH = map[string]Schema{
	"customer": New(
		Col("c_custkey", I64()),
		Col("c_name", Utf8()),
		Col("c_address", Utf8()),
		Col("c_nationkey", I64()),
		Col("c_phone", Utf8()),
		Col("c_acctbal", Dec(15, 2)),
		Col("c_mktsegment", Utf8()),
		Col("c_comment", Utf8()),
	),
	"lineitem": New(
		Col("l_orderkey", I64()),
		Col("l_partkey", I64()),
		Col("l_suppkey", I64()),
		Col("l_linenumber", I32()),
		Col("l_quantity", Dec(15, 2)),
		Col("l_extendedprice", Dec(15, 2)),
		Col("l_discount", Dec(15, 2)),
		Col("l_tax", Dec(15, 2)),
		Col("l_returnflag", Utf8()),
		Col("l_linestatus", Utf8()),
		Col("l_shipdate", Date32()),
		Col("l_commitdate", Date32()),
		Col("l_receiptdate", Date32()),
		Col("l_shipinstruct", Utf8()),
		Col("l_shipmode", Utf8()),
		Col("l_comment", Utf8()),
	),
	"nation": New(
		Col("n_nationkey", I64()),
		Col("n_name", Utf8()),
		Col("n_regionkey", I64()),
		Col("n_comment", Utf8()),
	),
	"orders": New(
		Col("o_orderkey", I64()),
		Col("o_custkey", I64()),
		Col("o_orderstatus", Utf8()),
		Col("o_totalprice", Dec(15, 2)),
		Col("o_orderdate", Date32()),
		Col("o_orderpriority", Utf8()),
		Col("o_clerk", Utf8()),
		Col("o_shippriority", I32()),
		Col("o_comment", Utf8()),
	),
	"part": New(
		Col("p_partkey", I64()),
		Col("p_name", Utf8()),
		Col("p_mfgr", Utf8()),
		Col("p_brand", Utf8()),
		Col("p_type", Utf8()),
		Col("p_size", I32()),
		Col("p_container", Utf8()),
		Col("p_retailprice", Dec(15, 2)),
		Col("p_comment", Utf8()),
	),
	"partsupp": New(
		Col("ps_partkey", I64()),
		Col("ps_suppkey", I64()),
		Col("ps_availqty", I32()),
		Col("ps_supplycost", Dec(15, 2)),
		Col("ps_comment", Utf8()),
	),
	"region": New(
		Col("r_regionkey", I64()),
		Col("r_name", Utf8()),
		Col("r_comment", Utf8()),
	),
	"supplier": New(
		Col("s_suppkey", I64()),
		Col("s_name", Utf8()),
		Col("s_address", Utf8()),
		Col("s_nationkey", I64()),
		Col("s_phone", Utf8()),
		Col("s_acctbal", Dec(15, 2)),
		Col("s_comment", Utf8()),
	),
}
